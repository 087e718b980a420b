// Package hdfs removes job output locations through the HDFS RPC protocol,
// without shelling out to the hadoop binary.
package hdfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	gohdfs "github.com/colinmarc/hdfs/v2"
)

// remover is the part of *hdfs.Client the cleaner needs.
type remover interface {
	RemoveAll(name string) error
	Close() error
}

type Cleaner struct {
	client  remover
	homeDir string
}

// NewCleaner connects to the given namenodes as user. Relative output paths
// resolve against /user/<user>, the way "hadoop fs" resolves them.
func NewCleaner(namenodes []string, user string) (*Cleaner, error) {
	if len(namenodes) == 0 {
		return nil, errors.New("at least one namenode address is required")
	}
	client, err := gohdfs.NewClient(gohdfs.ClientOptions{
		Addresses: namenodes,
		User:      user,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to namenode %v: %w", namenodes, err)
	}
	return newCleaner(client, user), nil
}

func newCleaner(client remover, user string) *Cleaner {
	home := "/"
	if user != "" {
		home = path.Join("/user", user)
	}
	return &Cleaner{client: client, homeDir: home}
}

// RemoveOutput deletes p recursively. A path that does not exist is already
// clean.
//
// The namenode RPC takes no context. When ctx is done first RemoveOutput
// returns ctx.Err() and the RPC finishes in the background.
func (c *Cleaner) RemoveOutput(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := c.resolve(p)
	if name == "/" {
		return fmt.Errorf("refusing to remove filesystem root")
	}

	done := make(chan error, 1)
	go func() {
		done <- c.client.RemoveAll(name)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
		return nil
	}
}

func (c *Cleaner) resolve(p string) string {
	if rest, ok := strings.CutPrefix(p, "hdfs://"); ok {
		// hdfs://namenode:8020/path -> /path
		if i := strings.Index(rest, "/"); i >= 0 {
			return path.Clean(rest[i:])
		}
		return "/"
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(c.homeDir, p)
}

func (c *Cleaner) Close() error {
	return c.client.Close()
}
