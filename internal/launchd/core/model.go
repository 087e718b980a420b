package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

type LaunchStatus string

const (
	LaunchStatusPending   LaunchStatus = "PENDING"
	LaunchStatusRunning   LaunchStatus = "RUNNING"
	LaunchStatusSucceeded LaunchStatus = "SUCCEEDED"
	LaunchStatusFailed    LaunchStatus = "FAILED"
)

func (s LaunchStatus) Valid() bool {
	switch s {
	case LaunchStatusPending, LaunchStatusRunning, LaunchStatusSucceeded, LaunchStatusFailed:
		return true
	}
	return false
}

// Launch records one submitted streaming job and its outcome.
type Launch struct {
	ID      uuid.UUID
	JobName string // registered definition, empty for ad-hoc requests
	Request streaming.JobRequest
	Command string
	Status  LaunchStatus
	Error   string

	SubmittedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

type LaunchFilter struct {
	Status *LaunchStatus
	Limit  int
	Offset int
}
