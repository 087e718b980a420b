package core

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

var (
	ErrLaunchNotFound = errors.New("launch not found")
	ErrInvalidRequest = errors.New("invalid launch request")
	ErrBusy           = errors.New("launch queue is full")
)

// LaunchService defines the interface for submitting and tracking launches
type LaunchService interface {
	Submit(req streaming.JobRequest) (*Launch, error)
	SubmitJob(name string) (*Launch, error)
	GetLaunch(id uuid.UUID) (*Launch, error)
	GetLaunches(filter LaunchFilter) ([]*Launch, int, error)
	Jobs() []string
}
