package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

var testBase = time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

func sampleSnapshot() scheduler.Snapshot {
	return scheduler.Snapshot{
		Entries: []meeting.Entry{
			{Week: 0, Day: calendar.Wednesday, Start: 2, Duration: 2, Name: "Review", Type: "Design", Frequency: meeting.Fortnightly},
			{Week: 2, Day: calendar.Wednesday, Start: 2, Duration: 2, Name: "Review", Type: "Design", Frequency: meeting.Fortnightly},
			{Week: 0, Day: calendar.Monday, Start: 6, Duration: 1, Name: "1:1", Type: "One-to-one", Frequency: meeting.Monthly},
		},
		Reservations: []meeting.Reservation{
			{Day: calendar.Tuesday, Start: 8, Duration: 2},
		},
	}
}

func TestRows(t *testing.T) {
	weeks := Rows(sampleSnapshot())

	if len(weeks) != calendar.NumWeeks {
		t.Fatalf("expected %d weeks, got %d", calendar.NumWeeks, len(weeks))
	}

	first := weeks[0]
	if first.Title() != "Week 1" {
		t.Errorf("Title() = %q", first.Title())
	}
	// Monday meeting, Tuesday reservation, Wednesday meeting.
	if len(first.Rows) != 3 {
		t.Fatalf("expected 3 rows in week 1, got %d", len(first.Rows))
	}

	want := []struct {
		day      calendar.Day
		name     string
		start    string
		end      string
		reserved bool
	}{
		{calendar.Monday, "1:1", "13:00", "13:30", false},
		{calendar.Tuesday, ReservedName, "14:00", "15:00", true},
		{calendar.Wednesday, "Review", "10:00", "11:00", false},
	}
	for i, w := range want {
		r := first.Rows[i]
		if r.Day != w.day || r.Name != w.name || r.Start != w.start || r.End != w.end || r.Reserved != w.reserved {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}

	res := first.Rows[1]
	if res.Type != ReservedType || res.Frequency != ReservedFrequency || res.Minutes != 60 {
		t.Errorf("unexpected reservation row %+v", res)
	}

	// Reservations repeat in every week; week 2 has nothing else.
	if len(weeks[1].Rows) != 1 || !weeks[1].Rows[0].Reserved {
		t.Errorf("week 2 rows = %+v", weeks[1].Rows)
	}
	if len(weeks[2].Rows) != 2 {
		t.Errorf("week 3 rows = %+v", weeks[2].Rows)
	}
}

func TestRow_Shade(t *testing.T) {
	if (Row{Day: calendar.Monday}).Shade() != "#ffffff" {
		t.Error("Monday should be white")
	}
	if (Row{Day: calendar.Tuesday}).Shade() != "#f2f2f2" {
		t.Error("Tuesday should be grey")
	}
}

func TestWriteHTML(t *testing.T) {
	snap := sampleSnapshot()
	snap.Entries[2].Name = "<script>alert(1)</script>"

	var buf bytes.Buffer
	if err := WriteHTML(&buf, snap, HTMLOptions{BackLink: "/"}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<h1>Weekly Meeting Schedule</h1>",
		"<h3>Week 1</h3>",
		"<h3>Week 4</h3>",
		"<td>Reserved (External)</td>",
		"background-color:#f2f2f2",
		"Print to PDF",
		`<a href="/">Return to Main Page</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("meeting names must be escaped")
	}
}

func TestWriteHTML_NoBackLink(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, scheduler.Snapshot{}, HTMLOptions{}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	if strings.Contains(buf.String(), "Return to Main Page") {
		t.Error("unexpected back link")
	}
	if strings.Count(buf.String(), "<table") != 4 {
		t.Error("expected four tables even when empty")
	}
}

func TestICS(t *testing.T) {
	stamp := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	data, err := ICS(sampleSnapshot(), ICSOptions{Base: testBase, Stamp: stamp})
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nPRODID:"+DefaultProdID+"\r\nVERSION:2.0\r\n") {
		t.Errorf("unexpected header: %q", out[:80])
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("missing calendar footer")
	}
	if strings.Count(out, "BEGIN:VEVENT") != 4 {
		t.Errorf("expected 4 events, got %d", strings.Count(out, "BEGIN:VEVENT"))
	}

	for _, want := range []string{
		// Week 1 Wednesday, 10:00
		"DTSTART:20250416T100000\r\n",
		// Week 3 Wednesday
		"DTSTART:20250430T100000\r\n",
		// Week 1 Monday, after the break
		"DTSTART:20250414T130000\r\n",
		"SUMMARY:Review (Design)\r\n",
		"DESCRIPTION:Type: Design\\, Duration: 60 min\\, Frequency: fortnightly\r\n",
		"DTSTAMP:20250401T080000Z\r\n",
		// Reservation
		"DTSTART:20250415T140000\r\nDURATION:PT60M\r\nRRULE:FREQ=WEEKLY;COUNT=4\r\n",
		"SUMMARY:Reserved (External)\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Only the reservation recurs.
	if strings.Count(out, "RRULE:") != 1 {
		t.Errorf("expected a single RRULE, got %d", strings.Count(out, "RRULE:"))
	}

	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		if strings.Contains(line, "\n") {
			t.Errorf("bare LF in line %q", line)
		}
	}
}

func TestICS_CarriageReturnInName(t *testing.T) {
	snap := scheduler.Snapshot{Entries: []meeting.Entry{
		{Week: 0, Day: calendar.Monday, Start: 0, Duration: 1, Name: "Split\rname", Type: "Design", Frequency: meeting.Monthly},
	}}
	data, err := ICS(snap, ICSOptions{Base: testBase, Stamp: time.Unix(0, 0)})
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "SUMMARY:Split\\nname (Design)\r\n") {
		t.Errorf("summary not escaped: %q", out)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		if strings.ContainsAny(line, "\r\n") {
			t.Errorf("bare line break in %q", line)
		}
	}
}

func TestICS_StableUIDs(t *testing.T) {
	opts := ICSOptions{Base: testBase, Stamp: time.Unix(0, 0)}
	a, err := ICS(sampleSnapshot(), opts)
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	b, err := ICS(sampleSnapshot(), opts)
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same snapshot should export identically")
	}

	uids := map[string]bool{}
	for _, line := range strings.Split(string(a), "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			if uids[line] {
				t.Errorf("duplicate %s", line)
			}
			uids[line] = true
		}
	}
	if len(uids) != 4 {
		t.Errorf("expected 4 UIDs, got %d", len(uids))
	}
}

func TestICS_RejectsNonMondayBase(t *testing.T) {
	_, err := ICS(sampleSnapshot(), ICSOptions{Base: testBase.AddDate(0, 0, 1)})
	if err == nil {
		t.Fatal("expected error for Tuesday base date")
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b;c", `a\,b\;c`},
		{`back\slash`, `back\\slash`},
		{"two\nlines", `two\nlines`},
		{"crlf\r\nlines", `crlf\nlines`},
		{"bare\rreturn", `bare\nreturn`},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := escapeText(tc.in); got != tc.want {
				t.Errorf("escapeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	t.Run("short line untouched", func(t *testing.T) {
		parts := fold("SUMMARY:short")
		if len(parts) != 1 || parts[0] != "SUMMARY:short" {
			t.Errorf("fold = %q", parts)
		}
	})

	t.Run("long ascii", func(t *testing.T) {
		line := "DESCRIPTION:" + strings.Repeat("x", 200)
		parts := fold(line)
		if len(parts) < 3 {
			t.Fatalf("expected at least 3 parts, got %d", len(parts))
		}
		var rebuilt strings.Builder
		for i, p := range parts {
			if len(p) > icsMaxLine {
				t.Errorf("part %d is %d octets", i, len(p))
			}
			if i > 0 {
				if !strings.HasPrefix(p, " ") {
					t.Errorf("continuation %d lacks leading space", i)
				}
				p = p[1:]
			}
			rebuilt.WriteString(p)
		}
		if rebuilt.String() != line {
			t.Error("unfolded text differs from input")
		}
	})

	t.Run("multibyte never split", func(t *testing.T) {
		line := "SUMMARY:" + strings.Repeat("é", 80)
		for i, p := range fold(line) {
			if len(p) > icsMaxLine {
				t.Errorf("part %d is %d octets", i, len(p))
			}
			if !utf8.ValidString(p) {
				t.Errorf("part %d splits a rune", i)
			}
		}
	})
}
