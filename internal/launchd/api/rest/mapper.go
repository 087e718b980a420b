package rest

import (
	"fmt"

	"github.com/tellapart/mrjerb/internal/launchd/core"
)

func toCreateLaunchResponse(launch *core.Launch) CreateLaunchResponse {
	id := launch.ID.String()
	return CreateLaunchResponse{
		LaunchID:    id,
		Status:      string(launch.Status),
		Command:     launch.Command,
		SubmittedAt: launch.SubmittedAt,
		Links: Links{
			Self: fmt.Sprintf("/api/launches/%s", id),
		},
	}
}

func toGetLaunchResponse(launch *core.Launch) GetLaunchResponse {
	return GetLaunchResponse{
		LaunchID: launch.ID.String(),
		JobName:  launch.JobName,
		Status:   string(launch.Status),
		Command:  launch.Command,
		Error:    launch.Error,
		Request:  launch.Request,
		Timestamps: TimestampsInfo{
			Submitted: launch.SubmittedAt,
			Started:   launch.StartedAt,
			Completed: launch.CompletedAt,
		},
	}
}

func toLaunchSummary(launch *core.Launch) LaunchSummary {
	return LaunchSummary{
		LaunchID:    launch.ID.String(),
		JobName:     launch.JobName,
		Name:        launch.Request.Name,
		Status:      string(launch.Status),
		SubmittedAt: launch.SubmittedAt,
		CompletedAt: launch.CompletedAt,
	}
}
