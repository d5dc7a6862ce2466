package calendar

import (
	"errors"
	"testing"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		label   string
		want    Day
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"Tuesday", Tuesday, false},
		{"Wednesday", Wednesday, false},
		{"Thursday", Thursday, false},
		{"Friday", 0, true},
		{"monday", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got, err := ParseDay(tc.label)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownDay) {
					t.Errorf("expected ErrUnknownDay, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseDay(%q) = %v, want %v", tc.label, got, tc.want)
			}
			if got.String() != tc.label {
				t.Errorf("String() = %q, want %q", got.String(), tc.label)
			}
		})
	}
}

func TestWeekString(t *testing.T) {
	if got := Week(0).String(); got != "Week 1" {
		t.Errorf("Week(0).String() = %q, want %q", got, "Week 1")
	}
	if got := Week(3).String(); got != "Week 4" {
		t.Errorf("Week(3).String() = %q, want %q", got, "Week 4")
	}
	if Week(4).Valid() {
		t.Error("Week(4) should be invalid")
	}
}

func TestInvalidDayString(t *testing.T) {
	if got := Day(7).String(); got != "Day(7)" {
		t.Errorf("Day(7).String() = %q", got)
	}
}
