package api

import (
	"time"

	"github.com/shootsync/shootsync-agent/internal/recon"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
	AgentID string `json:"agent_id"`
}

type StatusResponse struct {
	State          string       `json:"state"`
	LastError      string       `json:"last_error,omitempty"`
	SchedulesCount int          `json:"schedules_count"`
	RunsPending    int          `json:"runs_pending"`
	ActiveRun      *RunResponse `json:"active_run,omitempty"`
}

type ScheduleRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location,omitempty"`
	Couple   string `json:"couple,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Cuts     int    `json:"cuts"`
	Price    int    `json:"price,omitempty"`
	Manager  string `json:"manager,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Memo     string `json:"memo,omitempty"`
}

type ScheduleResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location,omitempty"`
	Couple    string `json:"couple,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Cuts      int    `json:"cuts"`
	Price     int    `json:"price,omitempty"`
	Manager   string `json:"manager,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Memo      string `json:"memo,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

type CreateRunRequest struct {
	Paths []string `json:"paths"`
}

type RunResponse struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	Paths      []string `json:"paths"`
	Error      string   `json:"error,omitempty"`
	Analyzed   int      `json:"analyzed"`
	Matched    int      `json:"matched"`
	Unmatched  int      `json:"unmatched"`
	Mismatched int      `json:"mismatched"`
	Applied    bool     `json:"applied"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type RunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

type FolderResponse struct {
	FolderPath     string   `json:"folder_path"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Couple         string   `json:"couple,omitempty"`
	CutsFromName   *int     `json:"cuts_from_name,omitempty"`
	TotalCount     int      `json:"total_count"`
	RawCount       int      `json:"raw_count"`
	JPEGCount      int      `json:"jpeg_count"`
	FinalCutCount  int      `json:"final_cut_count"`
	ScheduleID     string   `json:"schedule_id,omitempty"`
	HasMismatch    bool     `json:"has_mismatch"`
	CutDiscrepancy bool     `json:"cut_discrepancy"`
	MismatchFiles  []string `json:"mismatch_files,omitempty"`
}

type RunDetailResponse struct {
	RunResponse
	Folders []FolderResponse `json:"folders"`
}

type ApplyResponse struct {
	RunID   string `json:"run_id"`
	Applied int    `json:"applied"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ScheduleToResponse(s *schedule.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		Date:      s.Date,
		Time:      s.Time,
		Location:  s.Location,
		Couple:    s.Couple,
		Contact:   s.Contact,
		Cuts:      s.Cuts,
		Price:     s.Price,
		Manager:   s.Manager,
		Brand:     s.Brand,
		Memo:      s.Memo,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func scheduleFromRequest(req ScheduleRequest) *schedule.Schedule {
	return &schedule.Schedule{
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Couple:   req.Couple,
		Contact:  req.Contact,
		Cuts:     req.Cuts,
		Price:    req.Price,
		Manager:  req.Manager,
		Brand:    req.Brand,
		Memo:     req.Memo,
	}
}

func RunToResponse(r *recon.Run) RunResponse {
	return RunResponse{
		ID:         r.ID,
		Status:     r.Status,
		Paths:      r.Paths,
		Error:      r.Error,
		Analyzed:   r.Analyzed,
		Matched:    r.Matched,
		Unmatched:  r.Unmatched,
		Mismatched: r.Mismatched,
		Applied:    r.Applied,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
}

func FolderToResponse(f *recon.FolderRecord) FolderResponse {
	return FolderResponse{
		FolderPath:     f.FolderPath,
		Date:           f.Date,
		Time:           f.Time,
		Couple:         f.Couple,
		CutsFromName:   f.CutsFromName,
		TotalCount:     f.TotalCount,
		RawCount:       f.RawCount,
		JPEGCount:      f.JPEGCount,
		FinalCutCount:  f.FinalCutCount,
		ScheduleID:     f.ScheduleID,
		HasMismatch:    f.HasMismatch,
		CutDiscrepancy: f.CutDiscrepancy,
		MismatchFiles:  f.MismatchFiles,
	}
}
