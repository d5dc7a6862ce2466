package scheduler

import (
	"fmt"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
)

// fortnightPairs are the only week pairings a fortnightly meeting may use,
// in the order they are tried at commit time.
var fortnightPairs = [2][2]calendar.Week{{0, 2}, {1, 3}}

// candidate is a day and start time that can host every occurrence.
type candidate struct {
	day   calendar.Day
	start calendar.Slot
	avg   float64 // average projected total hours over the qualifying weeks
}

// Place finds a day and start time for req and commits one entry per
// occurrence. It returns the committed entries.
//
// The search prefers the day with the lowest projected load; ties go to the
// earliest day in load order, then the earliest candidate time. If no
// candidate can host every occurrence, Place fails with
// meeting.ErrNoSlotAvailable and leaves the scheduler unchanged. Commit is
// all-or-nothing: the full set of weeks is chosen before anything is written.
func (s *Scheduler) Place(req *meeting.Request) ([]meeting.Entry, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", meeting.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.search(req)
	if !ok {
		s.log.Info().
			Str("name", req.Name).
			Str("frequency", string(req.Frequency)).
			Msg("no slot available")
		return nil, fmt.Errorf("%w for %q", meeting.ErrNoSlotAvailable, req.Name)
	}

	s.log.Debug().
		Str("name", req.Name).
		Str("day", c.day.String()).
		Str("start", c.start.String()).
		Float64("projected_hours", c.avg).
		Msg("candidate selected")

	weeks, err := s.chooseWeeks(req, c.day, c.start)
	if err != nil {
		return nil, err
	}

	return s.commit(req, c.day, c.start, weeks), nil
}

// search is the read-only phase of Place.
func (s *Scheduler) search(req *meeting.Request) (candidate, bool) {
	var (
		best  candidate
		found bool
	)
	for _, d := range s.candidateDays(req) {
		for _, t := range candidateTimes(req) {
			avg, ok := s.evaluate(req, d, t)
			if !ok {
				continue
			}
			if !found || avg < best.avg {
				best = candidate{day: d, start: t, avg: avg}
				found = true
			}
		}
	}
	return best, found
}

// candidateDays returns the days to search in order. A fixed day is the only
// candidate and is not subject to the meeting cap.
func (s *Scheduler) candidateDays(req *meeting.Request) []calendar.Day {
	if req.FixedDay != nil {
		return []calendar.Day{*req.FixedDay}
	}

	var days []calendar.Day
	for _, d := range s.load.DayOrder() {
		if s.load.WeeklyMeetingHours(d) > s.meetingCap {
			s.log.Debug().
				Str("day", d.String()).
				Float64("weekly_meeting_hours", s.load.WeeklyMeetingHours(d)).
				Msg("day over meeting cap")
			continue
		}
		days = append(days, d)
	}
	return days
}

func candidateTimes(req *meeting.Request) []calendar.Slot {
	if req.FixedTime != nil {
		return []calendar.Slot{*req.FixedTime}
	}
	if len(req.Preferred) > 0 {
		return req.Preferred
	}
	return calendar.Slots()
}

// evaluate reports whether (d, t) can host every occurrence of req and, if
// so, the average projected total hours across the qualifying weeks.
func (s *Scheduler) evaluate(req *meeting.Request, d calendar.Day, t calendar.Slot) (float64, bool) {
	projected := s.load.TotalHours(d) + float64(req.Duration)*0.5

	if req.Frequency == meeting.Fortnightly {
		for _, p := range fortnightPairs {
			if s.grid.Free(p[0], d, t, req.Duration) && s.grid.Free(p[1], d, t, req.Duration) {
				return projected, true
			}
		}
		return 0, false
	}

	need := req.Frequency.Occurrences()
	valid := 0
	sum := 0.0
	for _, w := range calendar.Weeks() {
		if valid >= need {
			break
		}
		if s.grid.Free(w, d, t, req.Duration) {
			valid++
			sum += projected
		}
	}
	if valid < need {
		return 0, false
	}
	return sum / float64(valid), true
}

// chooseWeeks picks the concrete weeks for the selected day and time.
// Fortnightly meetings take the first pairing that is free; other
// frequencies walk a shuffled week order so early weeks are not favoured.
func (s *Scheduler) chooseWeeks(req *meeting.Request, d calendar.Day, t calendar.Slot) ([]calendar.Week, error) {
	if req.Frequency == meeting.Fortnightly {
		for _, p := range fortnightPairs {
			if s.grid.Free(p[0], d, t, req.Duration) && s.grid.Free(p[1], d, t, req.Duration) {
				return []calendar.Week{p[0], p[1]}, nil
			}
		}
		return nil, fmt.Errorf("%w: no fortnight pairing free on %s at %s", meeting.ErrNoSlotAvailable, d, t)
	}

	need := req.Frequency.Occurrences()
	order := calendar.Weeks()
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	var used [calendar.NumWeeks]bool
	chosen := make([]calendar.Week, 0, need)
	for _, w := range order {
		if len(chosen) == need {
			break
		}
		if used[w] || !s.grid.Free(w, d, t, req.Duration) {
			continue
		}
		used[w] = true
		chosen = append(chosen, w)
	}
	if len(chosen) < need {
		return nil, fmt.Errorf("%w: only %d of %d weeks free on %s at %s",
			meeting.ErrNoSlotAvailable, len(chosen), need, d, t)
	}
	return chosen, nil
}

// commit writes one entry per week. Every week has already been checked.
func (s *Scheduler) commit(req *meeting.Request, d calendar.Day, t calendar.Slot, weeks []calendar.Week) []meeting.Entry {
	committed := make([]meeting.Entry, 0, len(weeks))
	for _, w := range weeks {
		e := meeting.Entry{
			Week:      w,
			Day:       d,
			Start:     t,
			Duration:  req.Duration,
			Name:      req.Name,
			Type:      req.Type,
			Frequency: req.Frequency,
		}
		s.grid.mark(w, d, t, req.Duration)
		s.load.addMeeting(d, req.Duration)
		s.entries = append(s.entries, e)
		committed = append(committed, e)
	}

	s.log.Info().
		Str("name", req.Name).
		Str("day", d.String()).
		Str("start", t.String()).
		Int("occurrences", len(committed)).
		Msg("meeting placed")
	return committed
}
