package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/meeting"
)

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Meeting Scheduler</title>
<link rel="stylesheet" href="https://stackpath.bootstrapcdn.com/bootstrap/4.5.2/css/bootstrap.min.css">
</head>
<body>
<div class="container mt-4">
<h1>Meeting Scheduler</h1><hr>
<h3>Add Reservation</h3>
<form action="/addReservation" method="get">
<div class="form-group"><label>Day</label>
<select name="day" class="form-control">{{range .Days}}<option>{{.}}</option>{{end}}</select></div>
<div class="form-group"><label>Start Time</label>
<input type="time" name="start_time" class="form-control" value="09:00"></div>
<div class="form-group"><label>Duration (minutes)</label>
<select name="duration" class="form-control">{{range .Durations}}<option value="{{.}}">{{.}}</option>{{end}}</select></div>
<button type="submit" class="btn btn-primary">Add Reservation</button>
</form><hr>
<h3>Add Meeting</h3>
<form action="/addMeeting" method="get">
<div class="form-group"><label>Meeting Name</label>
<input type="text" name="name" class="form-control" required></div>
<div class="form-group"><label>Meeting Type</label>
<select name="type" class="form-control" required>{{range .Types}}<option value="{{.}}">{{.}}</option>{{end}}</select></div>
<div class="form-group"><label>Duration (minutes)</label>
<select name="duration" class="form-control">{{range .Durations}}<option value="{{.}}">{{.}}</option>{{end}}</select></div>
<div class="form-group"><label>Preferred Times (comma separated e.g., 09:30,10:00)</label>
<input type="text" name="preferred_times" class="form-control"></div>
<div class="form-group"><label>Fixed Day (optional)</label>
<select name="fixed_day" class="form-control"><option value="">None</option>{{range .Days}}<option>{{.}}</option>{{end}}</select></div>
<div class="form-group"><label>Fixed Time (optional)</label>
<input type="time" name="fixed_time" class="form-control"></div>
<div class="form-group"><label>Frequency</label>
<select name="frequency" class="form-control">{{range .Frequencies}}<option value="{{.Value}}">{{.Label}}</option>{{end}}</select></div>
<button type="submit" class="btn btn-primary">Add Meeting</button>
</form><hr>
<h3>Schedule</h3>
<p><a class="btn btn-secondary" href="/displaySchedule">View Schedule</a></p><hr>
<h3>Export ICS</h3>
<form action="/exportICS" method="get">
<div class="form-group"><label>Filename</label>
<input type="text" name="filename" class="form-control" placeholder="schedule.ics" required></div>
<button type="submit" class="btn btn-primary">Export ICS</button>
</form><hr>
<h3>Clear Session</h3>
<p><a class="btn btn-danger" href="/clearSession">Clear All Meetings &amp; Reservations</a></p>
</div>
</body>
</html>
`

const messageHTML = `<html><body><div class="container"><h3>{{.}}</h3><p><a href="/">Return to Main Page</a></p></div></body></html>`

const notFoundHTML = `<html><body><h3>404 Not Found</h3></body></html>`

var (
	indexTmpl   = template.Must(template.New("index").Parse(indexHTML))
	messageTmpl = template.Must(template.New("message").Parse(messageHTML))
)

type frequencyOption struct {
	Value string
	Label string
}

func (s *Server) registerPages() {
	methods := []string{http.MethodGet, http.MethodPost}

	s.echo.GET("/", s.handleIndex)
	s.echo.Match(methods, "/addReservation", s.handleAddReservation)
	s.echo.Match(methods, "/addMeeting", s.handleAddMeeting)
	s.echo.GET("/displaySchedule", s.handleDisplaySchedule)
	s.echo.GET("/exportICS", s.handleExportICS)
	s.echo.Match(methods, "/clearSession", s.handleClearSession)
	s.echo.RouteNotFound("/*", func(c echo.Context) error {
		return c.HTML(http.StatusNotFound, notFoundHTML)
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	var freqs []frequencyOption
	for _, f := range meeting.Frequencies() {
		freqs = append(freqs, frequencyOption{Value: string(f), Label: frequencyLabel(f)})
	}
	data := struct {
		Days        []string
		Durations   []int
		Types       []string
		Frequencies []frequencyOption
	}{
		Days:        calendar.DayLabels(),
		Durations:   []int{30, 60, 90},
		Types:       meeting.Types,
		Frequencies: freqs,
	}
	return render(c, indexTmpl, data)
}

func (s *Server) handleAddReservation(c echo.Context) error {
	day := strings.TrimSpace(c.FormValue("day"))
	start := strings.TrimSpace(c.FormValue("start_time"))
	minutes, err := strconv.Atoi(strings.TrimSpace(c.FormValue("duration")))
	if day == "" || start == "" || err != nil {
		return message(c, "Failed to add reservation.")
	}

	if err := s.sched.ReserveSlot(day, start, minutes); err != nil {
		s.log.Info().Err(err).Msg("reservation rejected")
		return message(c, "Failed to add reservation.")
	}
	return message(c, "Reservation added successfully.")
}

func (s *Server) handleAddMeeting(c echo.Context) error {
	req, err := meeting.NewRequest(meetingForm(c))
	if err == nil {
		_, err = s.sched.Place(req)
	}
	if err != nil {
		s.log.Info().Err(err).Msg("meeting rejected")
		return message(c, "Failed to add meeting.")
	}
	return message(c, "Meeting added successfully.")
}

func (s *Server) handleDisplaySchedule(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, s.sched.Snapshot(), export.HTMLOptions{BackLink: "/"}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleExportICS(c echo.Context) error {
	data, err := export.ICS(s.sched.Snapshot(), s.icsOptions())
	if err != nil {
		return err
	}
	name := icsFilename(c.QueryParam("filename"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (s *Server) handleClearSession(c echo.Context) error {
	s.sched.Clear()
	return message(c, "Session Cleared.")
}

func message(c echo.Context, text string) error {
	return render(c, messageTmpl, text)
}

func render(c echo.Context, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func frequencyLabel(f meeting.Frequency) string {
	switch f {
	case meeting.Fortnightly:
		return "Fortnightly"
	case meeting.ThirdWeek:
		return "Third Week"
	case meeting.Monthly:
		return "Monthly"
	default:
		return "Weekly"
	}
}
