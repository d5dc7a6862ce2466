// Package calendar defines the fixed four-week planning horizon: working days,
// half-hour slots and weeks, plus the conversions between them and their labels.
package calendar

import (
	"errors"
	"fmt"
)

// Label lookup errors.
var (
	ErrUnknownDay  = errors.New("unknown day")
	ErrUnknownTime = errors.New("unknown time")
	ErrBreakTime   = errors.New("time falls in the midday break")
)

// Grid dimensions.
const (
	NumWeeks = 4
	NumDays  = 4
	NumSlots = 14
)

// DayEndHour is the hour every slot run must finish by.
const DayEndHour = 17.0

// breakSlot is the first slot after the midday break.
const breakSlot = 6

var dayLabels = [NumDays]string{"Monday", "Tuesday", "Wednesday", "Thursday"}

var slotLabels = [NumSlots]string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30",
}

var breakLabels = [2]string{"12:00", "12:30"}

// Day is a working day of the week, Monday through Thursday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
)

// Days returns all working days in order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday}
}

// DayLabels returns the canonical day labels in order.
func DayLabels() []string {
	return dayLabels[:]
}

// ParseDay converts a canonical label such as "Monday" into a Day.
// Matching is exact and case-sensitive.
func ParseDay(label string) (Day, error) {
	for i, l := range dayLabels {
		if l == label {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, label)
}

// Valid reports whether d is one of the four working days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Thursday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayLabels[d]
}

// Week is a zero-based week of the horizon. Week 0 is shown as "Week 1".
type Week int

// Weeks returns all weeks of the horizon in order.
func Weeks() []Week {
	return []Week{0, 1, 2, 3}
}

// Valid reports whether w lies within the horizon.
func (w Week) Valid() bool {
	return w >= 0 && w < NumWeeks
}

func (w Week) String() string {
	return fmt.Sprintf("Week %d", int(w)+1)
}
