package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shootsync/shootsync-agent/internal/config"
	"github.com/shootsync/shootsync-agent/internal/recon"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.ScheduleRepo, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Get("/schedules", listSchedulesHandler(cfg))
		r.Post("/schedules", createScheduleHandler(cfg))
		r.Get("/schedules/{id}", getScheduleHandler(cfg))
		r.Put("/schedules/{id}", updateScheduleHandler(cfg))
		r.Delete("/schedules/{id}", deleteScheduleHandler(cfg))
		r.Post("/runs", createRunHandler(cfg))
		r.Get("/runs", listRunsHandler(cfg))
		r.Get("/runs/{id}", getRunHandler(cfg))
		r.Post("/runs/{id}/apply", applyRunHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
			AgentID: cfg.AgentID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		schedules, err := cfg.Schedules.List(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list schedules", "INTERNAL_ERROR")
			return
		}
		runs, err := cfg.Runs.ListRuns(ctx, 10)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list runs", "INTERNAL_ERROR")
			return
		}

		state := "idle"
		var activeRun *RunResponse
		runsPending := 0
		lastError := ""

		for _, run := range runs {
			switch run.Status {
			case recon.RunStatusRunning:
				state = "analyzing"
				resp := RunToResponse(run)
				activeRun = &resp
			case recon.RunStatusPending:
				runsPending++
			case recon.RunStatusFailed:
				if lastError == "" {
					lastError = run.Error
				}
			}
		}

		if lastError != "" && state == "idle" {
			state = "error"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:          state,
			LastError:      lastError,
			SchedulesCount: len(schedules),
			RunsPending:    runsPending,
			ActiveRun:      activeRun,
		})
	}
}

func listSchedulesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var schedules []*schedule.Schedule
		var err error
		if date := r.URL.Query().Get("date"); date != "" {
			schedules, err = cfg.Schedules.ListByDate(r.Context(), date)
		} else {
			schedules, err = cfg.Schedules.List(r.Context())
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list schedules", "INTERNAL_ERROR")
			return
		}

		resp := SchedulesResponse{Schedules: make([]ScheduleResponse, len(schedules))}
		for i, s := range schedules {
			resp.Schedules[i] = ScheduleToResponse(s)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createScheduleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		sc, err := cfg.Schedules.Create(r.Context(), scheduleFromRequest(req))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, ScheduleToResponse(sc))
	}
}

func getScheduleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		sc, err := cfg.Schedules.Get(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if sc == nil {
			WriteError(w, http.StatusNotFound, "schedule not found", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, ScheduleToResponse(sc))
	}
}

func updateScheduleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		sc := scheduleFromRequest(req)
		sc.ID = id
		updated, err := cfg.Schedules.Update(r.Context(), sc)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, ScheduleToResponse(updated))
	}
}

func deleteScheduleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := cfg.Schedules.Delete(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func createRunHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		run, err := cfg.Runs.StartRun(r.Context(), req.Paths)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusAccepted, RunToResponse(run))
	}
}

func listRunsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := cfg.Runs.ListRuns(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list runs", "INTERNAL_ERROR")
			return
		}

		resp := RunsResponse{Runs: make([]RunResponse, len(runs))}
		for i, run := range runs {
			resp.Runs[i] = RunToResponse(run)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getRunHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		run, err := cfg.Runs.GetRun(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if run == nil {
			WriteError(w, http.StatusNotFound, "run not found", "NOT_FOUND")
			return
		}

		records, err := cfg.Runs.GetFolderRecords(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		resp := RunDetailResponse{
			RunResponse: RunToResponse(run),
			Folders:     make([]FolderResponse, len(records)),
		}
		for i, rec := range records {
			resp.Folders[i] = FolderToResponse(rec)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func applyRunHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		applied, err := cfg.Runs.ApplyRun(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, ApplyResponse{RunID: id, Applied: applied})
	}
}
