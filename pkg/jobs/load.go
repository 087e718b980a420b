package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

// definition is the on-disk layout of a job file. The request fields sit at
// the top level next to the optional name.
type definition struct {
	Name                 string `mapstructure:"name"`
	streaming.JobRequest `mapstructure:",squash"`
}

// decodeHook keeps viper's default hooks and adds compressionHook.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	compressionHook,
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
)

var compressionType = reflect.TypeOf(streaming.Compression(""))

// compressionHook renders a YAML bool as "true" or "false". Weak decoding
// would otherwise turn it into "1" or "0", which hadoop reads as false.
func compressionHook(from, to reflect.Type, data any) (any, error) {
	if to != compressionType || from.Kind() != reflect.Bool {
		return data, nil
	}
	return strconv.FormatBool(data.(bool)), nil
}

// LoadFiles registers one job per regular file matched by patterns. Patterns
// use doublestar syntax, e.g. "jobs/**/*.yaml". A file's job name is its
// "name" key, or the file name without extension.
func (r *Registry) LoadFiles(patterns ...string) (int, error) {
	files, err := findFiles(patterns)
	if err != nil {
		return 0, err
	}
	for _, file := range files {
		name, job, err := ReadFile(file)
		if err != nil {
			return 0, err
		}
		if err := r.Register(name, job); err != nil {
			return 0, fmt.Errorf("%s: %w", file, err)
		}
	}
	return len(files), nil
}

// ReadFile decodes a single job definition file.
func ReadFile(path string) (string, streaming.JobRequest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", streaming.JobRequest{}, fmt.Errorf("error reading job file %s: %w", path, err)
	}

	var def definition
	if err := v.Unmarshal(&def, viper.DecodeHook(decodeHook)); err != nil {
		return "", streaming.JobRequest{}, fmt.Errorf("error decoding job file %s: %w", path, err)
	}

	name := def.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return name, def.JobRequest, nil
}

func findFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid job pattern %q: %w", pattern, err)
		}
		for _, name := range matches {
			info, err := os.Lstat(name)
			if err != nil {
				continue
			}
			if info.Mode().IsRegular() && !seen[name] {
				seen[name] = true
				files = append(files, name)
			}
		}
	}
	return files, nil
}
