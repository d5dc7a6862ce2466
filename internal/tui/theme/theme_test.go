package theme

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{"load mocha theme", "mocha", "mocha"},
		{"load latte theme", "latte", "latte"},
		{"name is case-insensitive", "LATTE", "latte"},
		{"empty name defaults to mocha", "", "mocha"},
		{"invalid theme falls back to mocha", "nonexistent", "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestThemeColorsSet(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", name, err)
			}
			colors := map[string]string{
				"bg":           th.Bg,
				"bg_highlight": th.BgHighlight,
				"fg":           th.Fg,
				"fg_muted":     th.FgMuted,
				"accent":       th.Accent,
				"meeting":      th.Meeting,
				"reserved":     th.Reserved,
				"warning":      th.Warning,
			}
			for key, v := range colors {
				if !strings.HasPrefix(v, "#") || len(v) != 7 {
					t.Errorf("%s = %q, want #rrggbb", key, v)
				}
			}
			if th.Meeting == th.Reserved {
				t.Error("meeting and reserved colors should differ")
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	th := Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff00ff"}
	th.applyDefaults()

	if th.BgHighlight != "#000000" {
		t.Errorf("BgHighlight = %q, want bg", th.BgHighlight)
	}
	if th.FgMuted != "#ffffff" {
		t.Errorf("FgMuted = %q, want fg", th.FgMuted)
	}
	if th.Warning != "#ff00ff" {
		t.Errorf("Warning = %q, want accent", th.Warning)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"mocha", true},
		{"Latte", true},
		{"frappe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.name); got != tt.want {
				t.Errorf("IsAvailable(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
