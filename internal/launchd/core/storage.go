package core

import "github.com/google/uuid"

// LaunchStore persists launch records. Implementations store and return copies.
type LaunchStore interface {
	SaveLaunch(launch *Launch) error
	UpdateLaunch(launch *Launch) error
	GetLaunchByID(id uuid.UUID) (*Launch, error)
	GetLaunches(filter LaunchFilter) ([]*Launch, int, error)
}
