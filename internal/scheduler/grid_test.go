package scheduler

import (
	"testing"

	"github.com/javiermolinar/meetgrid/internal/calendar"
)

func TestGrid_Free(t *testing.T) {
	var g Grid
	g.mark(1, calendar.Monday, 3, 2)

	tests := []struct {
		name  string
		week  calendar.Week
		day   calendar.Day
		start calendar.Slot
		n     int
		want  bool
	}{
		{"other week", 0, calendar.Monday, 3, 2, true},
		{"overlap start", 1, calendar.Monday, 2, 2, false},
		{"overlap end", 1, calendar.Monday, 4, 1, false},
		{"adjacent after", 1, calendar.Monday, 5, 1, true},
		{"other day", 1, calendar.Tuesday, 3, 2, true},
		{"past end of day", 0, calendar.Monday, 13, 2, false},
		{"from half eleven", 0, calendar.Monday, 5, 2, true},
		{"afternoon start", 0, calendar.Monday, 6, 3, true},
		{"invalid week", 4, calendar.Monday, 0, 1, false},
		{"invalid day", 0, calendar.Day(7), 0, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Free(tc.week, tc.day, tc.start, tc.n); got != tc.want {
				t.Errorf("Free(%d, %d, %d, %d) = %v, want %v", tc.week, tc.day, tc.start, tc.n, got, tc.want)
			}
		})
	}
}

func TestGrid_OccupiedOutOfRange(t *testing.T) {
	var g Grid
	if !g.Occupied(0, calendar.Monday, 14) {
		t.Error("slot past the grid should read as occupied")
	}
	if g.Occupied(0, calendar.Monday, 13) {
		t.Error("empty grid cell should be free")
	}
}

func TestGrid_FreeAllWeeks(t *testing.T) {
	var g Grid
	if !g.FreeAllWeeks(calendar.Thursday, 10, 3) {
		t.Fatal("empty grid should be free in every week")
	}
	g.mark(3, calendar.Thursday, 12, 1)
	if g.FreeAllWeeks(calendar.Thursday, 10, 3) {
		t.Error("expected conflict in the last week")
	}
	if g.Empty() {
		t.Error("grid with a marked cell is not empty")
	}
}

func TestLoad_DayOrder(t *testing.T) {
	var l Load
	l.addReservation(calendar.Monday, 1)   // 2h
	l.addMeeting(calendar.Tuesday, 3)      // 1.5h
	l.addReservation(calendar.Thursday, 1) // 2h

	got := l.DayOrder()
	want := []calendar.Day{calendar.Wednesday, calendar.Tuesday, calendar.Monday, calendar.Thursday}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DayOrder() = %v, want %v", got, want)
		}
	}

	if l.MeetingHours(calendar.Monday) != 0 {
		t.Error("reservations must not count as meeting hours")
	}
	if l.WeeklyMeetingHours(calendar.Tuesday) != 0.375 {
		t.Errorf("WeeklyMeetingHours(Tuesday) = %v, want 0.375", l.WeeklyMeetingHours(calendar.Tuesday))
	}
}
