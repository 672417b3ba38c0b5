package analysis

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPeriod marks a malformed or inverted analysis period. It is a
// client error and never reaches the computation stage.
var ErrInvalidPeriod = errors.New("invalid analysis period")

// Period is the concrete, inclusive date range a report covers. Named
// presets are resolved to concrete dates before the engine sees them.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the period spans, inclusive.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// ResolvePeriod turns period parameters into concrete dates. A named preset
// ("1month", "3months", "6months", "1year") anchors the range at now;
// otherwise explicit ISO-8601 start/end dates are required.
func ResolvePeriod(preset, start, end string, now time.Time) (Period, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	if start != "" || end != "" {
		s, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return Period{}, fmt.Errorf("%w: start date %q", ErrInvalidPeriod, start)
		}

		e, err := time.Parse(time.DateOnly, end)
		if err != nil {
			return Period{}, fmt.Errorf("%w: end date %q", ErrInvalidPeriod, end)
		}

		if s.After(e) {
			return Period{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidPeriod, start, end)
		}

		return Period{Label: "custom", Start: s, End: e}, nil
	}

	if preset == "" {
		preset = "1month"
	}

	var s time.Time

	switch preset {
	case "1month":
		s = today.AddDate(0, -1, 0)
	case "3months":
		s = today.AddDate(0, -3, 0)
	case "6months":
		s = today.AddDate(0, -6, 0)
	case "1year":
		s = today.AddDate(-1, 0, 0)
	default:
		return Period{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidPeriod, preset)
	}

	return Period{Label: preset, Start: s, End: today}, nil
}
