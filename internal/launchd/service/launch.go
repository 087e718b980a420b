package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/internal/launchd/core"
	"github.com/tellapart/mrjerb/internal/shared/logging"
	"github.com/tellapart/mrjerb/internal/shared/pool"
	"github.com/tellapart/mrjerb/pkg/jobs"
	"github.com/tellapart/mrjerb/pkg/streaming"
)

// Launcher renders and runs streaming jobs.
type Launcher interface {
	Command(req streaming.JobRequest) streaming.Command
	Run(ctx context.Context, req streaming.JobRequest) error
}

// Submitter queues work for asynchronous execution.
type Submitter interface {
	Submit(task pool.Task) error
}

type launchService struct {
	ctx       context.Context
	launcher  Launcher
	store     core.LaunchStore
	registry  *jobs.Registry
	submitter Submitter
	logger    logging.Logger
}

// NewLaunchService returns a service that runs launches on submitter. ctx
// bounds every launched process; cancelling it stops running jobs.
func NewLaunchService(
	ctx context.Context,
	launcher Launcher,
	store core.LaunchStore,
	registry *jobs.Registry,
	submitter Submitter,
	logger logging.Logger,
) core.LaunchService {
	return &launchService{
		ctx:       ctx,
		launcher:  launcher,
		store:     store,
		registry:  registry,
		submitter: submitter,
		logger:    logger,
	}
}

func (s *launchService) Submit(req streaming.JobRequest) (*core.Launch, error) {
	return s.submit("", req)
}

func (s *launchService) SubmitJob(name string) (*core.Launch, error) {
	req, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return s.submit(name, req)
}

func (s *launchService) submit(jobName string, req streaming.JobRequest) (*core.Launch, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidRequest, err)
	}

	launch := &core.Launch{
		ID:          uuid.New(),
		JobName:     jobName,
		Request:     req,
		Command:     s.launcher.Command(req).String(),
		Status:      core.LaunchStatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.SaveLaunch(launch); err != nil {
		return nil, err
	}

	id := launch.ID
	if err := s.submitter.Submit(func() { s.run(id) }); err != nil {
		s.finish(launch, err)
		if errors.Is(err, pool.ErrQueueFull) {
			return nil, fmt.Errorf("%w: %w", core.ErrBusy, err)
		}
		return nil, err
	}

	s.logger.Info("Launch submitted",
		"launch_id", id.String(),
		"job", jobName,
		"name", req.Name,
		"output", req.Output,
	)
	return launch, nil
}

func (s *launchService) run(id uuid.UUID) {
	launch, err := s.store.GetLaunchByID(id)
	if err != nil || launch == nil {
		s.logger.Error("Launch disappeared before running", "launch_id", id.String(), "error", err)
		return
	}

	launch.Status = core.LaunchStatusRunning
	launch.StartedAt = ptrTimeNow()
	if err := s.store.UpdateLaunch(launch); err != nil {
		s.logger.Error("Failed to update launch", "launch_id", id.String(), "error", err)
	}

	s.logger.Info("Launch started", "launch_id", id.String(), "command", launch.Command)
	s.finish(launch, s.launcher.Run(s.ctx, launch.Request))
}

func (s *launchService) finish(launch *core.Launch, runErr error) {
	launch.CompletedAt = ptrTimeNow()
	if runErr == nil {
		launch.Status = core.LaunchStatusSucceeded
	} else {
		launch.Status = core.LaunchStatusFailed
		launch.Error = runErr.Error()
	}
	if err := s.store.UpdateLaunch(launch); err != nil {
		s.logger.Error("Failed to update launch", "launch_id", launch.ID.String(), "error", err)
		return
	}

	s.logger.Info("Launch finished",
		"launch_id", launch.ID.String(),
		"status", string(launch.Status),
		"error", launch.Error,
	)
}

func (s *launchService) GetLaunch(id uuid.UUID) (*core.Launch, error) {
	launch, err := s.store.GetLaunchByID(id)
	if err != nil {
		return nil, err
	}
	if launch == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrLaunchNotFound, id)
	}
	return launch, nil
}

func (s *launchService) GetLaunches(filter core.LaunchFilter) ([]*core.Launch, int, error) {
	return s.store.GetLaunches(filter)
}

func (s *launchService) Jobs() []string {
	return s.registry.List()
}

func ptrTimeNow() *time.Time {
	t := time.Now().UTC()
	return &t
}
