package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/dateutil"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

const (
	icsLocalLayout = "20060102T150405"
	icsUTCLayout   = "20060102T150405Z"
	icsMaxLine     = 75
)

// DefaultProdID identifies the generator in exported calendars.
const DefaultProdID = "-//Meeting Scheduler//xAI//EN"

// uidNamespace scopes event UIDs so the same schedule always exports the
// same identifiers.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("meetgrid.local"))

// ICSOptions controls calendar export.
type ICSOptions struct {
	Base   time.Time // Monday of week 1
	ProdID string
	Stamp  time.Time // DTSTAMP; zero means now
}

// WriteICS writes the snapshot as an iCalendar stream.
//
// Every meeting entry becomes its own event on its concrete date; entries
// are already expanded per occurrence so none carries a recurrence rule.
// Each reservation becomes one weekly event repeating over the horizon.
func WriteICS(w io.Writer, snap scheduler.Snapshot, opts ICSOptions) error {
	if opts.Base.Weekday() != time.Monday {
		return fmt.Errorf("%w: %s", dateutil.ErrNotMonday, opts.Base.Format(dateutil.Layout))
	}
	if opts.ProdID == "" {
		opts.ProdID = DefaultProdID
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}
	stamp := opts.Stamp.UTC().Format(icsUTCLayout)
	base := opts.Base.Format(dateutil.Layout)

	lw := &lineWriter{w: bufio.NewWriter(w)}
	lw.line("BEGIN:VCALENDAR")
	lw.line("PRODID:" + opts.ProdID)
	lw.line("VERSION:2.0")
	lw.line("CALSCALE:GREGORIAN")

	for _, e := range snap.Entries {
		writeEntry(lw, e, opts.Base, base, stamp)
	}
	for _, r := range snap.Reservations {
		writeReservation(lw, r, opts.Base, base, stamp)
	}

	lw.line("END:VCALENDAR")
	return lw.flush()
}

// ICS returns the calendar as bytes.
func ICS(snap scheduler.Snapshot, opts ICSOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, snap, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(lw *lineWriter, e meeting.Entry, base time.Time, baseLabel, stamp string) {
	date := dateutil.OccurrenceDate(base, e.Week, e.Day)
	start := dateutil.SlotTime(date, e.Start)
	uid := eventUID(fmt.Sprintf("entry|%s|%d|%d|%d|%d|%s", baseLabel, e.Week, e.Day, e.Start, e.Duration, e.Name))

	lw.line("BEGIN:VEVENT")
	lw.line("UID:" + uid)
	lw.line("DTSTAMP:" + stamp)
	lw.line("DTSTART:" + start.Format(icsLocalLayout))
	lw.line(fmt.Sprintf("DURATION:PT%dM", e.Minutes()))
	lw.line("SUMMARY:" + escapeText(fmt.Sprintf("%s (%s)", e.Name, e.Type)))
	lw.line("DESCRIPTION:" + escapeText(fmt.Sprintf("Type: %s, Duration: %d min, Frequency: %s", e.Type, e.Minutes(), e.Frequency)))
	lw.line("END:VEVENT")
}

func writeReservation(lw *lineWriter, r meeting.Reservation, base time.Time, baseLabel, stamp string) {
	date := dateutil.OccurrenceDate(base, 0, r.Day)
	start := dateutil.SlotTime(date, r.Start)
	uid := eventUID(fmt.Sprintf("reservation|%s|%d|%d|%d", baseLabel, r.Day, r.Start, r.Duration))

	lw.line("BEGIN:VEVENT")
	lw.line("UID:" + uid)
	lw.line("DTSTAMP:" + stamp)
	lw.line("DTSTART:" + start.Format(icsLocalLayout))
	lw.line(fmt.Sprintf("DURATION:PT%dM", r.Minutes()))
	lw.line(fmt.Sprintf("RRULE:FREQ=WEEKLY;COUNT=%d", calendar.NumWeeks))
	lw.line("SUMMARY:" + escapeText(ReservedName))
	lw.line("DESCRIPTION:" + escapeText(fmt.Sprintf("External commitment, Duration: %d min", r.Minutes())))
	lw.line("END:VEVENT")
}

func eventUID(identity string) string {
	return uuid.NewSHA1(uidNamespace, []byte(identity)).String() + "@meetgrid"
}

// escapeText escapes a TEXT property value.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)
	return r.Replace(s)
}

// lineWriter writes CRLF-terminated content lines folded at 75 octets.
// The first write error sticks and is returned by flush.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	for _, part := range fold(s) {
		lw.write(part)
		lw.write("\r\n")
	}
}

func (lw *lineWriter) write(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = lw.w.WriteString(s)
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return fmt.Errorf("writing calendar: %w", lw.err)
	}
	if err := lw.w.Flush(); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// fold splits a content line into physical lines of at most 75 octets.
// Continuation lines start with a space, which counts toward the limit.
// Splits never land inside a UTF-8 sequence.
func fold(s string) []string {
	if len(s) <= icsMaxLine {
		return []string{s}
	}
	var parts []string
	limit := icsMaxLine
	prefix := ""
	for len(s) > 0 {
		if len(prefix)+len(s) <= limit {
			parts = append(parts, prefix+s)
			break
		}
		cut := limit - len(prefix)
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		parts = append(parts, prefix+s[:cut])
		s = s[cut:]
		prefix = " "
	}
	return parts
}
