// Package match pairs parsed shoot folder metadata with schedule
// records. Matching is a hard boolean predicate over date, time and
// couple names; there is no similarity scoring.
package match

import (
	"strings"

	"github.com/shootsync/shootsync-agent/internal/foldername"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

// Find returns the first schedule in input order that satisfies the
// predicate, or nil. When several schedules qualify the choice is
// arbitrary but deterministic for a fixed input order.
func Find(meta *foldername.Meta, schedules []*schedule.Schedule) *schedule.Schedule {
	for _, sc := range schedules {
		if Matches(meta, sc) {
			return sc
		}
	}
	return nil
}

// Matches reports whether the folder metadata and the schedule denote
// the same session. Date must be string-equal in canonical form, times
// must normalize to the same HH:MM, and when both sides carry couple
// names one normalized side must contain the other. An empty couple on
// either side skips the name criterion entirely: only date and time
// are load-bearing.
func Matches(meta *foldername.Meta, sc *schedule.Schedule) bool {
	if sc.Date != meta.Date {
		return false
	}
	if foldername.NormalizeTime(sc.Time) != foldername.NormalizeTime(meta.Time) {
		return false
	}
	if meta.Couple != "" && sc.Couple != "" {
		folder := foldername.NormalizeNames(meta.Couple)
		booked := foldername.NormalizeNames(sc.Couple)
		if !strings.Contains(booked, folder) && !strings.Contains(folder, booked) {
			return false
		}
	}
	return true
}
