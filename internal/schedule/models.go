// Package schedule holds the booked-session records the folder
// analysis engine reconciles against, persisted in the agent's SQLite
// database.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one booked photography session. Date is canonical
// YYYY.MM.DD and Time canonical HH:MM; Couple is free text as entered
// by the operator. Cuts is the delivered-photo count the engine
// proposes to update.
type Schedule struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location,omitempty"`
	Couple    string    `json:"couple,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Cuts      int       `json:"cuts"`
	Price     int       `json:"price,omitempty"`
	Manager   string    `json:"manager,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CutUpdate is one proposed cut-count write, produced by a completed
// analysis and applied by the operator.
type CutUpdate struct {
	ScheduleID string `json:"schedule_id"`
	Cuts       int    `json:"cuts"`
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}
