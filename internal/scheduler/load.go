package scheduler

import (
	"sort"

	"github.com/javiermolinar/meetgrid/internal/calendar"
)

// Load tracks booked hours per day, summed over the whole horizon.
// Total counts meetings and reservations; Meeting counts meetings only.
type Load struct {
	total   [calendar.NumDays]float64
	meeting [calendar.NumDays]float64
}

// TotalHours returns meeting plus reservation hours booked on d.
func (l Load) TotalHours(d calendar.Day) float64 {
	return l.total[d]
}

// MeetingHours returns meeting-only hours booked on d.
func (l Load) MeetingHours(d calendar.Day) float64 {
	return l.meeting[d]
}

// WeeklyMeetingHours returns the average meeting hours per week on d.
func (l Load) WeeklyMeetingHours(d calendar.Day) float64 {
	return l.meeting[d] / calendar.NumWeeks
}

// DayOrder returns the working days sorted by ascending total hours.
// Days with equal load keep their calendar order.
func (l Load) DayOrder() []calendar.Day {
	days := calendar.Days()
	sort.SliceStable(days, func(i, j int) bool {
		return l.total[days[i]] < l.total[days[j]]
	})
	return days
}

func (l *Load) addReservation(d calendar.Day, slots int) {
	l.total[d] += float64(slots) * 0.5 * calendar.NumWeeks
}

func (l *Load) addMeeting(d calendar.Day, slots int) {
	h := float64(slots) * 0.5
	l.total[d] += h
	l.meeting[d] += h
}
