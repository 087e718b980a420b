// Package jobs keeps named streaming job definitions.
package jobs

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

var ErrJobNotFound = errors.New("job not found")

type Registry struct {
	mu   sync.RWMutex
	jobs map[string]streaming.JobRequest
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]streaming.JobRequest)}
}

func (r *Registry) Register(name string, job streaming.JobRequest) error {
	if name == "" {
		return errors.New("job name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[name]; exists {
		return fmt.Errorf("job already registered: %s", name)
	}
	r.jobs[name] = job
	return nil
}

// Get returns a copy of the named definition; callers may modify it freely.
func (r *Registry) Get(name string) (streaming.JobRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, exists := r.jobs[name]
	if !exists {
		return streaming.JobRequest{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	job.Inputs = slices.Clone(job.Inputs)
	job.JarPaths = slices.Clone(job.JarPaths)
	return job, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
