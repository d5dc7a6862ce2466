// Package batch reads request files and applies them to a scheduler.
//
// A request file is TOML with any number of [[reservation]] and [[meeting]]
// tables:
//
//	[[reservation]]
//	day = "Tuesday"
//	start = "14:00"
//	duration = 60
//
//	[[meeting]]
//	name = "Design review"
//	type = "Design"
//	duration = 90
//	preferred = ["10:00", "14:30"]
//	frequency = "fortnightly"
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/meetgrid/internal/meeting"
)

// File is a parsed request file.
type File struct {
	Reservations []ReservationSpec `toml:"reservation"`
	Meetings     []MeetingSpec     `toml:"meeting"`
}

// ReservationSpec is one [[reservation]] table. The same shape is accepted
// as JSON by the web API.
type ReservationSpec struct {
	Day      string `toml:"day" json:"day"`
	Start    string `toml:"start" json:"start"`
	Duration int    `toml:"duration" json:"duration"` // minutes
}

// Reservation validates the table and builds a Reservation.
func (r ReservationSpec) Reservation() (*meeting.Reservation, error) {
	return meeting.NewReservation(r.Day, r.Start, r.Duration)
}

// MeetingSpec is one [[meeting]] table. The same shape is accepted as JSON
// by the web API.
type MeetingSpec struct {
	Name      string   `toml:"name" json:"name"`
	Type      string   `toml:"type" json:"type"`
	Duration  int      `toml:"duration" json:"duration"` // minutes
	Preferred []string `toml:"preferred,omitempty" json:"preferred,omitempty"`
	Day       string   `toml:"day,omitempty" json:"day,omitempty"`
	Time      string   `toml:"time,omitempty" json:"time,omitempty"`
	Frequency string   `toml:"frequency" json:"frequency"`
}

// Request validates the table and builds a Request.
func (m MeetingSpec) Request() (*meeting.Request, error) {
	return meeting.NewRequest(meeting.RequestInput{
		Name:      m.Name,
		Type:      m.Type,
		Minutes:   m.Duration,
		Preferred: m.Preferred,
		Day:       m.Day,
		Time:      m.Time,
		Frequency: m.Frequency,
	})
}

// Load reads and parses a request file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return Parse(data)
}

// Parse decodes request file contents. Unknown keys are rejected so typos
// do not silently drop a constraint.
func Parse(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parsing request file: %s", strict.String())
		}
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return &f, nil
}

// Len returns the number of items in the file.
func (f *File) Len() int {
	return len(f.Reservations) + len(f.Meetings)
}

// Placer is the part of the scheduler a batch drives.
type Placer interface {
	Reserve(r meeting.Reservation) error
	Place(req *meeting.Request) ([]meeting.Entry, error)
}

// Kind tells reservations and meetings apart in outcomes.
type Kind string

const (
	KindReservation Kind = "reservation"
	KindMeeting     Kind = "meeting"
)

// Outcome is the result of applying one item.
type Outcome struct {
	Kind    Kind
	Index   int    // position within its kind, 0-based
	Label   string // human-readable item summary
	Entries []meeting.Entry
	Err     error
}

// OK reports whether the item was applied.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Apply runs every reservation, then every meeting, in file order.
// A failing item is recorded and the batch carries on.
func Apply(p Placer, f *File) []Outcome {
	outcomes := make([]Outcome, 0, f.Len())

	for i, spec := range f.Reservations {
		o := Outcome{
			Kind:  KindReservation,
			Index: i,
			Label: fmt.Sprintf("%s %s (%d min)", spec.Day, spec.Start, spec.Duration),
		}
		r, err := spec.Reservation()
		if err == nil {
			err = p.Reserve(*r)
		}
		o.Err = err
		outcomes = append(outcomes, o)
	}

	for i, spec := range f.Meetings {
		o := Outcome{
			Kind:  KindMeeting,
			Index: i,
			Label: spec.Name,
		}
		req, err := spec.Request()
		if err == nil {
			o.Entries, err = p.Place(req)
		}
		o.Err = err
		outcomes = append(outcomes, o)
	}

	return outcomes
}

// Failed counts outcomes with an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}
