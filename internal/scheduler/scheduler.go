// Package scheduler places recurring meetings into the four-week grid.
//
// A Scheduler owns the blocking grid, the reservation ledger and the load
// tracker. Every operation holds the scheduler's lock from validation to
// the last write, so a placement's search and commit never observe another
// caller's changes.
package scheduler

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
)

// DefaultMeetingCap is the average weekly meeting hours above which a day
// stops taking new meetings unless the request fixes that day.
const DefaultMeetingCap = 2.5

// Scheduler holds the session state of one planning horizon.
type Scheduler struct {
	mu           sync.Mutex
	grid         Grid
	load         Load
	reservations []meeting.Reservation
	entries      []meeting.Entry

	rng        *rand.Rand
	meetingCap float64
	log        zerolog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRand sets the random source used to shuffle week order.
// Pass a seeded source for reproducible placements.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed is shorthand for WithRand over a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithMeetingCap overrides DefaultMeetingCap. Non-positive values are ignored.
func WithMeetingCap(hours float64) Option {
	return func(s *Scheduler) {
		if hours > 0 {
			s.meetingCap = hours
		}
	}
}

// WithLogger sets the logger for placement decisions.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	now := uint64(time.Now().UnixNano())
	s := &Scheduler{
		rng:        rand.New(rand.NewPCG(now, now>>1)),
		meetingCap: DefaultMeetingCap,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReserveSlot blocks a time range on day in all four weeks.
// It fails with meeting.ErrInvalidInput for bad labels or ranges and with
// meeting.ErrSlotConflict if any week already has a covered slot taken.
func (s *Scheduler) ReserveSlot(day, start string, minutes int) error {
	r, err := meeting.NewReservation(day, start, minutes)
	if err != nil {
		return err
	}
	return s.Reserve(*r)
}

// Reserve blocks the reservation's slots in all four weeks.
// Either every week is blocked and the ledger updated, or nothing changes.
func (s *Scheduler) Reserve(r meeting.Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grid.FreeAllWeeks(r.Day, r.Start, r.Duration) {
		return fmt.Errorf("%w: %s %s-%s", meeting.ErrSlotConflict, r.Day, r.Start, r.End())
	}

	for _, w := range calendar.Weeks() {
		s.grid.mark(w, r.Day, r.Start, r.Duration)
	}
	s.reservations = append(s.reservations, r)
	s.load.addReservation(r.Day, r.Duration)

	s.log.Info().
		Str("day", r.Day.String()).
		Str("start", r.Start.String()).
		Int("minutes", r.Minutes()).
		Msg("reservation added")
	return nil
}

// Clear resets the session: no entries, no reservations, an empty grid and
// zero load.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid = Grid{}
	s.load = Load{}
	s.reservations = nil
	s.entries = nil

	s.log.Info().Msg("session cleared")
}

// Entries returns a copy of all committed schedule entries in commit order.
func (s *Scheduler) Entries() []meeting.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]meeting.Entry(nil), s.entries...)
}

// Reservations returns a copy of the reservation ledger.
func (s *Scheduler) Reservations() []meeting.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]meeting.Reservation(nil), s.reservations...)
}

// Snapshot is a consistent, independent copy of the scheduler state for
// renderers and exporters.
type Snapshot struct {
	Entries      []meeting.Entry
	Reservations []meeting.Reservation
	Grid         Grid
	Load         Load
}

// Snapshot copies the current state under the lock.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Entries:      append([]meeting.Entry(nil), s.entries...),
		Reservations: append([]meeting.Reservation(nil), s.reservations...),
		Grid:         s.grid,
		Load:         s.load,
	}
}
