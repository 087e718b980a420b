package storage

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/internal/launchd/core"
)

type InMemoryLaunchStore struct {
	mu       sync.RWMutex
	launches map[uuid.UUID]core.Launch
}

func NewInMemoryLaunchStore() *InMemoryLaunchStore {
	return &InMemoryLaunchStore{
		launches: make(map[uuid.UUID]core.Launch),
	}
}

func (s *InMemoryLaunchStore) SaveLaunch(launch *core.Launch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.launches[launch.ID]; exists {
		return fmt.Errorf("launch already exists: %s", launch.ID)
	}
	s.launches[launch.ID] = clone(launch)
	return nil
}

func (s *InMemoryLaunchStore) UpdateLaunch(launch *core.Launch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.launches[launch.ID]; !exists {
		return fmt.Errorf("%w: %s", core.ErrLaunchNotFound, launch.ID)
	}
	s.launches[launch.ID] = clone(launch)
	return nil
}

func (s *InMemoryLaunchStore) GetLaunchByID(id uuid.UUID) (*core.Launch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	launch, exists := s.launches[id]
	if !exists {
		return nil, nil
	}
	c := clone(&launch)
	return &c, nil
}

// GetLaunches returns a page of launches, oldest first, and the total number
// matching the filter.
func (s *InMemoryLaunchStore) GetLaunches(filter core.LaunchFilter) ([]*core.Launch, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []*core.Launch
	for _, launch := range s.launches {
		if filter.Status != nil && launch.Status != *filter.Status {
			continue
		}
		c := clone(&launch)
		filtered = append(filtered, &c)
	}
	slices.SortFunc(filtered, func(a, b *core.Launch) int {
		if c := a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	total := len(filtered)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return filtered[start:end], total, nil
}

func clone(l *core.Launch) core.Launch {
	c := *l
	c.Request.Inputs = slices.Clone(l.Request.Inputs)
	c.Request.JarPaths = slices.Clone(l.Request.JarPaths)
	if l.StartedAt != nil {
		t := *l.StartedAt
		c.StartedAt = &t
	}
	if l.CompletedAt != nil {
		t := *l.CompletedAt
		c.CompletedAt = &t
	}
	return c
}
