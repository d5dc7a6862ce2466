package integration

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/meetgrid/internal/batch"
	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/db"
	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

const teamFile = `
[[reservation]]
day = "Tuesday"
start = "14:00"
duration = 60

[[reservation]]
day = "Thursday"
start = "09:00"
duration = 90

[[meeting]]
name = "Client call"
type = "Client"
duration = 60
day = "Monday"
time = "10:00"
frequency = "fortnightly"

[[meeting]]
name = "Standup"
type = "Management"
duration = 30
preferred = ["09:00", "09:30"]
frequency = "weekly"

[[meeting]]
name = "Design review"
type = "Design"
duration = 90
preferred = ["14:00"]
frequency = "monthly"

[[meeting]]
name = "1:1"
type = "One-to-one"
duration = 30
frequency = "third_week"

[[meeting]]
name = "Clash"
type = "Client"
duration = 60
day = "Tuesday"
time = "14:00"
frequency = "weekly"
`

// openArchive creates a fresh archive for each test with automatic cleanup.
func openArchive(t *testing.T) *db.SQLite {
	t.Helper()
	archive, err := db.New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

// mustParseDate parses a date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

// plan applies teamFile to a scheduler seeded with seed.
func plan(t *testing.T, seed uint64) (scheduler.Snapshot, []batch.Outcome) {
	t.Helper()
	f, err := batch.Parse([]byte(teamFile))
	if err != nil {
		t.Fatalf("failed to parse request file: %v", err)
	}
	sched := scheduler.New(scheduler.WithSeed(seed), scheduler.WithLogger(zerolog.Nop()))
	outcomes := batch.Apply(sched, f)
	return sched.Snapshot(), outcomes
}

func TestFullWorkflow(t *testing.T) {
	snap, outcomes := plan(t, 11)

	// The clash with the Tuesday reservation is the only failure.
	if got := batch.Failed(outcomes); got != 1 {
		t.Fatalf("expected 1 failure, got %d", got)
	}
	last := outcomes[len(outcomes)-1]
	if last.Label != "Clash" || !errors.Is(last.Err, meeting.ErrNoSlotAvailable) {
		t.Errorf("expected Clash to fail with ErrNoSlotAvailable, got %q: %v", last.Label, last.Err)
	}

	// 2 fortnightly + 4 weekly + 1 monthly + 1 third week
	if len(snap.Entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(snap.Entries))
	}
	assertNoOverlap(t, snap)

	// Export, archive and read back.
	archive := openArchive(t)
	ctx := context.Background()
	run := &db.Run{Label: "team", Seed: 11, Entries: snap.Entries, Reservations: snap.Reservations}
	if err := archive.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := archive.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if !slices.Equal(got.Entries, snap.Entries) {
		t.Errorf("archived entries differ:\n got %+v\nwant %+v", got.Entries, snap.Entries)
	}
	if !slices.Equal(got.Reservations, snap.Reservations) {
		t.Errorf("archived reservations differ")
	}

	// The calendar of an archived run is byte-identical to the live one.
	opts := export.ICSOptions{
		Base:  mustParseDate(t, "2025-04-14"),
		Stamp: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
	live, err := export.ICS(snap, opts)
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	archived, err := export.ICS(scheduler.Snapshot{Entries: got.Entries, Reservations: got.Reservations}, opts)
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	if string(live) != string(archived) {
		t.Error("calendar from archived run differs from live calendar")
	}
	if n := strings.Count(string(live), "BEGIN:VEVENT"); n != 10 {
		t.Errorf("expected 10 events (8 entries, 2 reservations), got %d", n)
	}
}

func TestSeedReproducibility(t *testing.T) {
	for _, seed := range []uint64{1, 2, 99} {
		a, _ := plan(t, seed)
		b, _ := plan(t, seed)
		if !slices.Equal(a.Entries, b.Entries) {
			t.Errorf("seed %d: placements differ between runs", seed)
		}
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	archive := openArchive(t)
	ctx := context.Background()

	snap, _ := plan(t, 3)
	base := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	for i, label := range []string{"first", "second", "third"} {
		run := &db.Run{
			Label:     label,
			Seed:      uint64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Entries:   snap.Entries,
		}
		if err := archive.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun %s failed: %v", label, err)
		}
	}

	runs, err := archive.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Label != "third" || runs[1].Label != "second" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if runs[0].EntryCount != len(snap.Entries) || runs[0].ReservationCount != 0 {
		t.Errorf("unexpected counts: %d entries, %d reservations", runs[0].EntryCount, runs[0].ReservationCount)
	}
}

func assertNoOverlap(t *testing.T, snap scheduler.Snapshot) {
	t.Helper()
	var used [calendar.NumWeeks][calendar.NumDays][calendar.NumSlots]string
	claim := func(w calendar.Week, d calendar.Day, start calendar.Slot, n int, who string) {
		for s := int(start); s < int(start)+n; s++ {
			if prev := used[w][d][s]; prev != "" {
				t.Errorf("%s %s %s: %q overlaps %q", w, d, calendar.Slot(s), who, prev)
			}
			used[w][d][s] = who
		}
	}
	for _, r := range snap.Reservations {
		for _, w := range calendar.Weeks() {
			claim(w, r.Day, r.Start, r.Duration, "reservation")
		}
	}
	for _, e := range snap.Entries {
		claim(e.Week, e.Day, e.Start, e.Duration, e.Name)
	}
}
