package texts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timerTagPrefix marks timer segment tags inside rich text.
const timerTagPrefix = "TIMER_"

// TimeUnit is the unit one timer segment displays.
type TimeUnit int

const (
	UnitDays TimeUnit = iota
	UnitHours
	UnitMinutes
	UnitSeconds
	UnitDeciseconds
	UnitCentiseconds
	UnitMilliseconds
)

// String returns a human-readable name for the time unit
func (u TimeUnit) String() string {
	switch u {
	case UnitDays:
		return "days"
	case UnitHours:
		return "hours"
	case UnitMinutes:
		return "minutes"
	case UnitSeconds:
		return "seconds"
	case UnitDeciseconds:
		return "deciseconds"
	case UnitCentiseconds:
		return "centiseconds"
	case UnitMilliseconds:
		return "milliseconds"
	default:
		return fmt.Sprintf("unknown(%d)", int(u))
	}
}

// SubSecond reports whether the unit displays fractions of a second, which
// forces the owning timer onto the 125ms micro-tick cadence.
func (u TimeUnit) SubSecond() bool {
	return u == UnitDeciseconds || u == UnitCentiseconds || u == UnitMilliseconds
}

// TimerSegment is one digit group of a countdown display: a printf-style
// format plus the unit it shows. Total segments display the cumulative
// remaining amount in their unit instead of the clock-face component.
type TimerSegment struct {
	Format string
	Unit   TimeUnit
	Total  bool
}

// longUnits maps the long-form tag vocabulary to units.
var longUnits = map[string]TimeUnit{
	"Days":         UnitDays,
	"Hours":        UnitHours,
	"Minutes":      UnitMinutes,
	"Seconds":      UnitSeconds,
	"Milliseconds": UnitMilliseconds,
}

// shortUnits maps the short-form tag vocabulary to unit and digit count.
var shortUnits = map[string]TimerSegment{
	"h":   {Format: "%d", Unit: UnitHours},
	"hh":  {Format: "%02d", Unit: UnitHours},
	"m":   {Format: "%d", Unit: UnitMinutes},
	"mm":  {Format: "%02d", Unit: UnitMinutes},
	"s":   {Format: "%d", Unit: UnitSeconds},
	"ss":  {Format: "%02d", Unit: UnitSeconds},
	"S":   {Format: "%01d", Unit: UnitDeciseconds},
	"SS":  {Format: "%02d", Unit: UnitCentiseconds},
	"SSS": {Format: "%03d", Unit: UnitMilliseconds},
}

// ParseTimerTag recognizes the TIMER_* tag vocabulary. Supported names after
// the prefix: the long units (Days, Hours, Minutes, Seconds, Milliseconds),
// the short clock forms (h/hh/m/mm/s/ss/S/SS/SSS), and cumulative totals as
// Total_<Unit>_<digits>.
func ParseTimerTag(tag string) (TimerSegment, bool) {
	name, ok := strings.CutPrefix(tag, timerTagPrefix)
	if !ok {
		return TimerSegment{}, false
	}

	if seg, ok := shortUnits[name]; ok {
		return seg, true
	}
	if unit, ok := longUnits[name]; ok {
		return TimerSegment{Format: "%d", Unit: unit}, true
	}

	if rest, ok := strings.CutPrefix(name, "Total_"); ok {
		unitName, digitsStr, found := strings.Cut(rest, "_")
		if !found {
			return TimerSegment{}, false
		}
		unit, ok := longUnits[unitName]
		if !ok {
			return TimerSegment{}, false
		}
		digits, err := strconv.Atoi(digitsStr)
		if err != nil || digits < 1 {
			return TimerSegment{}, false
		}
		return TimerSegment{
			Format: fmt.Sprintf("%%0%dd", digits),
			Unit:   unit,
			Total:  true,
		}, true
	}

	return TimerSegment{}, false
}

// Render formats the segment for a remaining duration. Negative durations
// clamp to zero so an expired timer shows zeros, never negative digits.
func (seg TimerSegment) Render(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf(seg.Format, seg.value(remaining))
}

func (seg TimerSegment) value(remaining time.Duration) int64 {
	ms := remaining.Milliseconds()
	if seg.Total {
		switch seg.Unit {
		case UnitDays:
			return ms / (24 * 3600 * 1000)
		case UnitHours:
			return ms / (3600 * 1000)
		case UnitMinutes:
			return ms / (60 * 1000)
		case UnitSeconds:
			return ms / 1000
		case UnitDeciseconds:
			return ms / 100
		case UnitCentiseconds:
			return ms / 10
		default:
			return ms
		}
	}
	switch seg.Unit {
	case UnitDays:
		return ms / (24 * 3600 * 1000)
	case UnitHours:
		return (ms / (3600 * 1000)) % 24
	case UnitMinutes:
		return (ms / (60 * 1000)) % 60
	case UnitSeconds:
		return (ms / 1000) % 60
	case UnitDeciseconds:
		return (ms % 1000) / 100
	case UnitCentiseconds:
		return (ms % 1000) / 10
	default:
		return ms % 1000
	}
}
