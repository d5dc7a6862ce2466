package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/meetgrid/internal/batch"
	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

// EntryJSON is a committed occurrence. Week counts from 1.
type EntryJSON struct {
	Week      int    `json:"week"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Minutes   int    `json:"duration"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Frequency string `json:"frequency"`
}

// ReservationJSON is a weekly external commitment.
type ReservationJSON struct {
	Day     string `json:"day"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"duration"`
}

// DayLoadJSON reports booked hours over the horizon.
type DayLoadJSON struct {
	Day          string  `json:"day"`
	TotalHours   float64 `json:"total_hours"`
	MeetingHours float64 `json:"meeting_hours"`
}

// ScheduleJSON is the body of GET /api/schedule.
type ScheduleJSON struct {
	Entries      []EntryJSON       `json:"entries"`
	Reservations []ReservationJSON `json:"reservations"`
	Load         []DayLoadJSON     `json:"load"`
}

func (s *Server) registerAPI() {
	g := s.echo.Group("/api")
	g.GET("/schedule", s.apiGetSchedule)
	g.DELETE("/schedule", s.apiClearSchedule)
	g.POST("/reservations", s.apiAddReservation)
	g.POST("/meetings", s.apiAddMeeting)
}

func (s *Server) apiGetSchedule(c echo.Context) error {
	return c.JSON(http.StatusOK, scheduleJSON(s.sched.Snapshot()))
}

func (s *Server) apiClearSchedule(c echo.Context) error {
	s.sched.Clear()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) apiAddReservation(c echo.Context) error {
	var spec batch.ReservationSpec
	if err := c.Bind(&spec); err != nil {
		return err
	}

	r, err := spec.Reservation()
	if err != nil {
		return apiError(err)
	}
	if err := s.sched.Reserve(*r); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, reservationJSON(*r))
}

func (s *Server) apiAddMeeting(c echo.Context) error {
	var spec batch.MeetingSpec
	if err := c.Bind(&spec); err != nil {
		return err
	}

	req, err := spec.Request()
	if err != nil {
		return apiError(err)
	}
	entries, err := s.sched.Place(req)
	if err != nil {
		return apiError(err)
	}

	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON(e))
	}
	return c.JSON(http.StatusCreated, map[string]any{"entries": out})
}

// apiError maps domain errors to HTTP status codes.
func apiError(err error) error {
	switch {
	case errors.Is(err, meeting.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, meeting.ErrSlotConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, meeting.ErrNoSlotAvailable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

func scheduleJSON(snap scheduler.Snapshot) ScheduleJSON {
	out := ScheduleJSON{
		Entries:      make([]EntryJSON, 0, len(snap.Entries)),
		Reservations: make([]ReservationJSON, 0, len(snap.Reservations)),
		Load:         make([]DayLoadJSON, 0, calendar.NumDays),
	}
	for _, e := range snap.Entries {
		out.Entries = append(out.Entries, entryJSON(e))
	}
	for _, r := range snap.Reservations {
		out.Reservations = append(out.Reservations, reservationJSON(r))
	}
	for _, d := range calendar.Days() {
		out.Load = append(out.Load, DayLoadJSON{
			Day:          d.String(),
			TotalHours:   snap.Load.TotalHours(d),
			MeetingHours: snap.Load.MeetingHours(d),
		})
	}
	return out
}

func entryJSON(e meeting.Entry) EntryJSON {
	return EntryJSON{
		Week:      int(e.Week) + 1,
		Day:       e.Day.String(),
		Start:     e.Start.String(),
		End:       e.End(),
		Minutes:   e.Minutes(),
		Name:      e.Name,
		Type:      e.Type,
		Frequency: string(e.Frequency),
	}
}

func reservationJSON(r meeting.Reservation) ReservationJSON {
	return ReservationJSON{
		Day:     r.Day.String(),
		Start:   r.Start.String(),
		End:     r.End(),
		Minutes: r.Minutes(),
	}
}
