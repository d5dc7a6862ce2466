package calendar

import (
	"fmt"
	"math"
)

// Slot is a half-hour slot index, 0 (09:00) through 13 (16:30).
// The midday break has no index: slot 5 is 11:30 and slot 6 is 13:00.
type Slot int

// Slots returns every slot of a day in order.
func Slots() []Slot {
	out := make([]Slot, NumSlots)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// SlotLabels returns the fourteen slot labels in order.
func SlotLabels() []string {
	return slotLabels[:]
}

// BreakLabels returns the labels that fall inside the midday break.
func BreakLabels() []string {
	return breakLabels[:]
}

// IsBreak reports whether label names a time inside the midday break.
func IsBreak(label string) bool {
	return label == breakLabels[0] || label == breakLabels[1]
}

// ParseSlot converts an "HH:MM" label into a Slot.
// Break labels return ErrBreakTime, anything else unknown returns ErrUnknownTime.
func ParseSlot(label string) (Slot, error) {
	if IsBreak(label) {
		return 0, fmt.Errorf("%w: %q", ErrBreakTime, label)
	}
	for i, l := range slotLabels {
		if l == label {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTime, label)
}

// Valid reports whether s is a real slot index.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotLabels[s]
}

// Hour returns the wall-clock start of the slot as a decimal hour,
// e.g. 10.5 for 10:30. Slots after the break are shifted by one hour.
func (s Slot) Hour() float64 {
	hour := int(s)/2 + 9
	if s >= breakSlot {
		hour++
	}
	return float64(hour) + float64(int(s)%2)*0.5
}

// Minutes returns the slot start as minutes since midnight.
func (s Slot) Minutes() int {
	return int(math.Round(s.Hour() * 60))
}

// EndTime returns the "HH:MM" label at which a run of n slots starting at
// start finishes, counting wall-clock time from the start.
func EndTime(start Slot, n int) string {
	end := start.Hour() + float64(n)*0.5
	h := int(end)
	m := int(math.Round((end - float64(h)) * 60))
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Fits reports whether a run of n slots starting at start stays inside the
// working day: it must start on a real slot, end by 17:00 and cover only
// real slots. A run may cover 11:30 and 13:00 back to back.
func Fits(start Slot, n int) bool {
	if !start.Valid() || n < 1 {
		return false
	}
	if start.Hour()+float64(n)*0.5 > DayEndHour {
		return false
	}
	return (start + Slot(n-1)).Valid()
}
