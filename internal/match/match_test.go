package match

import (
	"testing"

	"github.com/shootsync/shootsync-agent/internal/foldername"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

func meta(date, tm, couple string) *foldername.Meta {
	return &foldername.Meta{Date: date, Time: tm, Couple: couple}
}

func booked(id, date, tm, couple string) *schedule.Schedule {
	return &schedule.Schedule{ID: id, Date: date, Time: tm, Couple: couple}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		meta *foldername.Meta
		sc   *schedule.Schedule
		want bool
	}{
		{
			"exact match",
			meta("2025.09.13", "11:30", "최다솔안연주"),
			booked("1", "2025.09.13", "11:30", "최다솔 안연주"),
			true,
		},
		{
			"schedule time in Korean spelling",
			meta("2025.09.13", "11:30", ""),
			booked("1", "2025.09.13", "11시30분", ""),
			true,
		},
		{
			"hour-only schedule time",
			meta("2025.09.13", "11:00", ""),
			booked("1", "2025.09.13", "11시", ""),
			true,
		},
		{
			"unpadded schedule hour",
			meta("2025.09.13", "09:30", ""),
			booked("1", "2025.09.13", "9:30", ""),
			true,
		},
		{
			"date differs",
			meta("2025.09.14", "11:30", ""),
			booked("1", "2025.09.13", "11:30", ""),
			false,
		},
		{
			"time differs",
			meta("2025.09.13", "12:30", ""),
			booked("1", "2025.09.13", "11:30", ""),
			false,
		},
		{
			"folder couple contained in schedule couple",
			meta("2025.09.13", "11:30", "최다솔"),
			booked("1", "2025.09.13", "11:30", "최다솔 안연주"),
			true,
		},
		{
			"schedule couple contained in folder couple",
			meta("2025.09.13", "11:30", "최다솔안연주"),
			booked("1", "2025.09.13", "11:30", "최다솔"),
			true,
		},
		{
			"couples disjoint",
			meta("2025.09.13", "11:30", "김철수이영희"),
			booked("1", "2025.09.13", "11:30", "최다솔 안연주"),
			false,
		},
		{
			"empty folder couple skips name check",
			meta("2025.09.13", "11:30", ""),
			booked("1", "2025.09.13", "11:30", "최다솔 안연주"),
			true,
		},
		{
			"empty schedule couple skips name check",
			meta("2025.09.13", "11:30", "최다솔안연주"),
			booked("1", "2025.09.13", "11:30", ""),
			true,
		},
		{
			"commas and case ignored in names",
			meta("2025.09.13", "11:30", "최다솔안연주"),
			booked("1", "2025.09.13", "11:30", "최다솔, 안연주"),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.meta, tt.sc); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFind_FirstQualifyingWins(t *testing.T) {
	schedules := []*schedule.Schedule{
		booked("a", "2025.09.13", "10:00", ""),
		booked("b", "2025.09.13", "11:30", ""),
		booked("c", "2025.09.13", "11:30", ""), // also qualifies, but comes later
	}

	got := Find(meta("2025.09.13", "11:30", ""), schedules)
	if got == nil || got.ID != "b" {
		t.Fatalf("Find() = %v, want schedule b (first qualifying in input order)", got)
	}
}

func TestFind_NoMatch(t *testing.T) {
	schedules := []*schedule.Schedule{
		booked("a", "2025.09.13", "10:00", ""),
	}
	if got := Find(meta("2025.12.01", "10:00", ""), schedules); got != nil {
		t.Fatalf("Find() = %v, want nil", got)
	}
}
