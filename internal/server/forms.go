package server

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
)

// formMinutes reads the meeting form's duration field. Anything other than
// 30, 60 or 90 becomes 30. Reservations take the field as given.
func formMinutes(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 30
	}
	switch n {
	case 30, 60, 90:
		return n
	default:
		return 30
	}
}

// formPreferred splits a comma-separated list of start times. Unknown
// labels are dropped and at most meeting.MaxPreferred are kept.
func formPreferred(v string) []string {
	var out []string
	for _, label := range strings.Split(v, ",") {
		if len(out) == meeting.MaxPreferred {
			break
		}
		label = strings.TrimSpace(label)
		if _, err := calendar.ParseSlot(label); err != nil {
			continue
		}
		out = append(out, label)
	}
	return out
}

// meetingForm reads the add-meeting form into request input. Validation is
// left to meeting.NewRequest.
func meetingForm(c echo.Context) meeting.RequestInput {
	return meeting.RequestInput{
		Name:      strings.TrimSpace(c.FormValue("name")),
		Type:      strings.TrimSpace(c.FormValue("type")),
		Minutes:   formMinutes(c.FormValue("duration")),
		Preferred: formPreferred(c.FormValue("preferred_times")),
		Day:       strings.TrimSpace(c.FormValue("fixed_day")),
		Time:      strings.TrimSpace(c.FormValue("fixed_time")),
		Frequency: strings.TrimSpace(c.FormValue("frequency")),
	}
}

// icsFilename sanitises the requested download name.
func icsFilename(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.LastIndexAny(v, `/\`); i >= 0 {
		v = v[i+1:]
	}
	v = strings.Map(func(r rune) rune {
		if r == '"' || r < 0x20 {
			return -1
		}
		return r
	}, v)
	if v == "" {
		return "schedule.ics"
	}
	if !strings.HasSuffix(strings.ToLower(v), ".ics") {
		v += ".ics"
	}
	return v
}
