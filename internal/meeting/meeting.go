// Package meeting defines the core domain types for meetgrid: meeting
// requests, external reservations and the concrete schedule entries the
// placement engine commits.
package meeting

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/meetgrid/internal/calendar"
)

// Domain errors.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSlotConflict    = errors.New("slot conflicts with existing booking")
	ErrNoSlotAvailable = errors.New("no slot available")
)

// MaxPreferred is the largest number of preferred start times a request may carry.
const MaxPreferred = 8

// Frequency is how often a meeting recurs within the four-week horizon.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	// ThirdWeek and Monthly both produce a single occurrence.
	ThirdWeek Frequency = "third_week"
	Monthly   Frequency = "monthly"
)

// Frequencies returns the accepted frequency labels in display order.
func Frequencies() []Frequency {
	return []Frequency{Weekly, Fortnightly, ThirdWeek, Monthly}
}

// ParseFrequency converts a label into a Frequency. Matching is exact.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, s)
}

// Valid returns true if the frequency is one of the accepted labels.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Fortnightly, ThirdWeek, Monthly:
		return true
	default:
		return false
	}
}

// Occurrences returns how many weeks of the horizon the frequency fills.
func (f Frequency) Occurrences() int {
	switch f {
	case Weekly:
		return 4
	case Fortnightly:
		return 2
	default:
		return 1
	}
}

// Types offered by the web form. The core accepts any type label.
var Types = []string{"One-to-one", "Design", "Management", "Contractor", "Client"}

// DurationSlots converts a duration in minutes into half-hour slots.
// Only 30, 60 and 90 minutes are accepted.
func DurationSlots(minutes int) (int, error) {
	switch minutes {
	case 30, 60, 90:
		return minutes / 30, nil
	default:
		return 0, fmt.Errorf("%w: duration must be 30, 60 or 90 minutes, got %d", ErrInvalidInput, minutes)
	}
}

// Request asks the engine to place a recurring meeting.
type Request struct {
	Name      string
	Type      string
	Duration  int             // slots, 1-3
	Preferred []calendar.Slot // tried in order; empty means no preference
	FixedDay  *calendar.Day
	FixedTime *calendar.Slot
	Frequency Frequency
}

// RequestInput carries the raw labels of a meeting request.
type RequestInput struct {
	Name      string
	Type      string
	Minutes   int
	Preferred []string
	Day       string // optional fixed day
	Time      string // optional fixed start time
	Frequency string
}

// NewRequest validates raw labels and builds a Request.
// Every label must match its table exactly; unknown labels fail with ErrInvalidInput.
func NewRequest(in RequestInput) (*Request, error) {
	dur, err := DurationSlots(in.Minutes)
	if err != nil {
		return nil, err
	}

	freq, err := ParseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	if len(in.Preferred) > MaxPreferred {
		return nil, fmt.Errorf("%w: at most %d preferred times, got %d", ErrInvalidInput, MaxPreferred, len(in.Preferred))
	}

	req := &Request{
		Name:      in.Name,
		Type:      in.Type,
		Duration:  dur,
		Frequency: freq,
	}

	for _, label := range in.Preferred {
		s, err := calendar.ParseSlot(label)
		if err != nil {
			return nil, fmt.Errorf("%w: preferred time: %w", ErrInvalidInput, err)
		}
		req.Preferred = append(req.Preferred, s)
	}

	if in.Day != "" {
		d, err := calendar.ParseDay(in.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: fixed day: %w", ErrInvalidInput, err)
		}
		req.FixedDay = &d
	}

	if in.Time != "" {
		s, err := calendar.ParseSlot(in.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: fixed time: %w", ErrInvalidInput, err)
		}
		req.FixedTime = &s
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks a Request built directly from typed values.
func (r *Request) Validate() error {
	if r.Duration < 1 || r.Duration > 3 {
		return fmt.Errorf("%w: duration must be 1-3 slots, got %d", ErrInvalidInput, r.Duration)
	}
	if !r.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, r.Frequency)
	}
	if len(r.Preferred) > MaxPreferred {
		return fmt.Errorf("%w: at most %d preferred times", ErrInvalidInput, MaxPreferred)
	}
	for _, s := range r.Preferred {
		if !s.Valid() {
			return fmt.Errorf("%w: preferred slot %d out of range", ErrInvalidInput, int(s))
		}
	}
	if r.FixedDay != nil && !r.FixedDay.Valid() {
		return fmt.Errorf("%w: fixed day %d out of range", ErrInvalidInput, int(*r.FixedDay))
	}
	if r.FixedTime != nil && !r.FixedTime.Valid() {
		return fmt.Errorf("%w: fixed slot %d out of range", ErrInvalidInput, int(*r.FixedTime))
	}
	return nil
}

// Reservation is an external commitment blocking the same slots every week.
type Reservation struct {
	Day      calendar.Day
	Start    calendar.Slot
	Duration int // slots
}

// NewReservation validates raw labels and builds a Reservation.
func NewReservation(day, start string, minutes int) (*Reservation, error) {
	d, err := calendar.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	s, err := calendar.ParseSlot(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	dur, err := DurationSlots(minutes)
	if err != nil {
		return nil, err
	}

	r := &Reservation{Day: d, Start: s, Duration: dur}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that the reservation lies inside the working day.
func (r *Reservation) Validate() error {
	if !r.Day.Valid() {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidInput, int(r.Day))
	}
	if r.Duration < 1 || r.Duration > 3 {
		return fmt.Errorf("%w: duration must be 1-3 slots, got %d", ErrInvalidInput, r.Duration)
	}
	if !calendar.Fits(r.Start, r.Duration) {
		return fmt.Errorf("%w: %s for %d min does not fit the working day", ErrInvalidInput, r.Start, r.Duration*30)
	}
	return nil
}

// End returns the end time label.
func (r Reservation) End() string {
	return calendar.EndTime(r.Start, r.Duration)
}

// Minutes returns the reservation length in minutes.
func (r Reservation) Minutes() int {
	return r.Duration * 30
}

// Entry is one committed occurrence of a meeting.
type Entry struct {
	Week      calendar.Week
	Day       calendar.Day
	Start     calendar.Slot
	Duration  int // slots
	Name      string
	Type      string
	Frequency Frequency
}

// End returns the end time label.
func (e Entry) End() string {
	return calendar.EndTime(e.Start, e.Duration)
}

// Minutes returns the occurrence length in minutes.
func (e Entry) Minutes() int {
	return e.Duration * 30
}
