package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tellapart/mrjerb/internal/launchd/core"
	"github.com/tellapart/mrjerb/pkg/streaming"
)

func newLaunch(status core.LaunchStatus, submitted time.Time) *core.Launch {
	return &core.Launch{
		ID:          uuid.New(),
		Status:      status,
		SubmittedAt: submitted,
		Request:     streaming.JobRequest{Inputs: []string{"/a/b/c/d"}},
	}
}

func TestInMemoryLaunchStore_SaveAndGet(t *testing.T) {
	store := NewInMemoryLaunchStore()
	launch := newLaunch(core.LaunchStatusPending, time.Now())

	require.NoError(t, store.SaveLaunch(launch))
	require.Error(t, store.SaveLaunch(launch))

	got, err := store.GetLaunchByID(launch.ID)
	require.NoError(t, err)
	require.Equal(t, launch, got)

	missing, err := store.GetLaunchByID(uuid.New())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestInMemoryLaunchStore_ReturnsCopies(t *testing.T) {
	store := NewInMemoryLaunchStore()
	launch := newLaunch(core.LaunchStatusPending, time.Now())
	require.NoError(t, store.SaveLaunch(launch))

	launch.Status = core.LaunchStatusFailed
	launch.Request.Inputs[0] = "/changed"

	got, _ := store.GetLaunchByID(launch.ID)
	require.Equal(t, core.LaunchStatusPending, got.Status)
	require.Equal(t, "/a/b/c/d", got.Request.Inputs[0])
}

func TestInMemoryLaunchStore_Update(t *testing.T) {
	store := NewInMemoryLaunchStore()
	launch := newLaunch(core.LaunchStatusPending, time.Now())
	require.ErrorIs(t, store.UpdateLaunch(launch), core.ErrLaunchNotFound)

	require.NoError(t, store.SaveLaunch(launch))
	now := time.Now()
	launch.Status = core.LaunchStatusRunning
	launch.StartedAt = &now
	require.NoError(t, store.UpdateLaunch(launch))

	got, _ := store.GetLaunchByID(launch.ID)
	require.Equal(t, core.LaunchStatusRunning, got.Status)
	require.NotNil(t, got.StartedAt)
}

func TestInMemoryLaunchStore_GetLaunches(t *testing.T) {
	store := NewInMemoryLaunchStore()
	base := time.Now()

	first := newLaunch(core.LaunchStatusSucceeded, base)
	second := newLaunch(core.LaunchStatusFailed, base.Add(time.Second))
	third := newLaunch(core.LaunchStatusSucceeded, base.Add(2*time.Second))
	for _, l := range []*core.Launch{third, first, second} {
		require.NoError(t, store.SaveLaunch(l))
	}

	all, total, err := store.GetLaunches(core.LaunchFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, ids(all))

	succeeded := core.LaunchStatusSucceeded
	page, total, err := store.GetLaunches(core.LaunchFilter{Status: &succeeded, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []uuid.UUID{third.ID}, ids(page))

	empty, total, err := store.GetLaunches(core.LaunchFilter{Limit: 10, Offset: 50})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Empty(t, empty)
}

func ids(launches []*core.Launch) []uuid.UUID {
	out := make([]uuid.UUID, len(launches))
	for i, l := range launches {
		out[i] = l.ID
	}
	return out
}
