package rest

import (
	"time"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

// CreateLaunchRequest is the body of POST /api/launches.
type CreateLaunchRequest = streaming.JobRequest

type CreateLaunchResponse struct {
	LaunchID    string    `json:"launch_id"`
	Status      string    `json:"status"`
	Command     string    `json:"command"`
	SubmittedAt time.Time `json:"submitted_at"`
	Links       Links     `json:"_links"`
}

type Links struct {
	Self string `json:"self"`
}

type GetLaunchResponse struct {
	LaunchID   string               `json:"launch_id"`
	JobName    string               `json:"job,omitempty"`
	Status     string               `json:"status"`
	Command    string               `json:"command"`
	Error      string               `json:"error,omitempty"`
	Request    streaming.JobRequest `json:"request"`
	Timestamps TimestampsInfo       `json:"timestamps"`
}

type TimestampsInfo struct {
	Submitted time.Time  `json:"submitted"`
	Started   *time.Time `json:"started,omitempty"`
	Completed *time.Time `json:"completed,omitempty"`
}

type LaunchSummary struct {
	LaunchID    string     `json:"launch_id"`
	JobName     string     `json:"job,omitempty"`
	Name        string     `json:"job_name"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ListLaunchesResponse struct {
	Launches   []LaunchSummary `json:"launches"`
	Total      int             `json:"total"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
	NextOffset *int            `json:"next_offset,omitempty"`
}

type ListJobsResponse struct {
	Jobs []string `json:"jobs"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
