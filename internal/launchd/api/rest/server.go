package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/internal/launchd/core"
	"github.com/tellapart/mrjerb/internal/shared/config"
	"github.com/tellapart/mrjerb/internal/shared/logging"
	"github.com/tellapart/mrjerb/pkg/jobs"
)

const (
	defaultLimit = 10
	maxBodyBytes = 1 << 20
)

type API struct {
	service core.LaunchService
	logger  logging.Logger
}

func NewAPI(service core.LaunchService, logger logging.Logger) *API {
	return &API{service: service, logger: logger}
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/launches", a.createLaunch)
	mux.HandleFunc("GET /api/launches", a.listLaunches)
	mux.HandleFunc("GET /api/launches/{id}", a.getLaunch)
	mux.HandleFunc("GET /api/jobs", a.listJobs)
	mux.HandleFunc("POST /api/jobs/{name}/launches", a.launchJob)
}

// createLaunch handles POST /api/launches
func (a *API) createLaunch(w http.ResponseWriter, r *http.Request) {
	var req CreateLaunchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	launch, err := a.service.Submit(req)
	if err != nil {
		a.respondSubmitError(w, err)
		return
	}
	a.respondJSON(w, http.StatusAccepted, toCreateLaunchResponse(launch))
}

// launchJob handles POST /api/jobs/{name}/launches
func (a *API) launchJob(w http.ResponseWriter, r *http.Request) {
	launch, err := a.service.SubmitJob(r.PathValue("name"))
	if err != nil {
		a.respondSubmitError(w, err)
		return
	}
	a.respondJSON(w, http.StatusAccepted, toCreateLaunchResponse(launch))
}

// getLaunch handles GET /api/launches/{id}
func (a *API) getLaunch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid launch ID", err.Error())
		return
	}

	launch, err := a.service.GetLaunch(id)
	if errors.Is(err, core.ErrLaunchNotFound) {
		a.respondError(w, http.StatusNotFound, "launch not found", "")
		return
	}
	if err != nil {
		a.respondInternal(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, toGetLaunchResponse(launch))
}

// listLaunches handles GET /api/launches with filters and pagination
func (a *API) listLaunches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := core.LaunchFilter{Limit: defaultLimit}
	if s := query.Get("status"); s != "" {
		status := core.LaunchStatus(s)
		if !status.Valid() {
			a.respondError(w, http.StatusBadRequest, "invalid status", s)
			return
		}
		filter.Status = &status
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	launches, total, err := a.service.GetLaunches(filter)
	if err != nil {
		a.respondInternal(w, err)
		return
	}

	summaries := make([]LaunchSummary, 0, len(launches))
	for _, launch := range launches {
		summaries = append(summaries, toLaunchSummary(launch))
	}

	var nextOffset *int
	if end := filter.Offset + len(launches); end < total {
		nextOffset = &end
	}

	a.respondJSON(w, http.StatusOK, ListLaunchesResponse{
		Launches:   summaries,
		Total:      total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		NextOffset: nextOffset,
	})
}

// listJobs handles GET /api/jobs
func (a *API) listJobs(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, ListJobsResponse{Jobs: a.service.Jobs()})
}

func (a *API) respondSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		a.respondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, jobs.ErrJobNotFound):
		a.respondError(w, http.StatusNotFound, "job not found", err.Error())
	case errors.Is(err, core.ErrBusy):
		a.respondError(w, http.StatusServiceUnavailable, "launch queue is full", err.Error())
	default:
		a.respondInternal(w, err)
	}
}

func (a *API) respondInternal(w http.ResponseWriter, err error) {
	a.logger.Error("Request failed", "error", err)
	a.respondError(w, http.StatusInternalServerError, "internal error", "")
}

func (a *API) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (a *API) respondError(w http.ResponseWriter, statusCode int, error string, message string) {
	resp := ErrorResponse{
		Error:   error,
		Message: message,
		Code:    statusCode,
	}
	a.respondJSON(w, statusCode, resp)
}

func NewServer(cfg config.RESTConfig, service core.LaunchService, logger logging.Logger) *http.Server {
	api := NewAPI(service, logger)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	handler := ChainMiddleware(
		mux,
		RequestIDMiddleware,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
	)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
