package ledger

import (
	"fmt"
	"time"

	"github.com/hance08/bolso/internal/apperr"
)

// Period is an inclusive range of days [Start, End].
//
// A balance over a period is the running total as of the end of End, not the
// movement inside the range: Start only documents the range being looked at.
type Period struct {
	Start Date
	End   Date
}

// NewPeriod returns [start, end] or a ValidationError when start is after end.
func NewPeriod(start, end Date) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, apperr.NewValidation("period", "start and end dates are required")
	}
	if start.After(end) {
		return Period{}, apperr.NewValidation("period", "start %s is after end %s", start, end)
	}
	return Period{Start: start, End: end}, nil
}

// AllTime covers every date a ledger can hold.
func AllTime() Period {
	return Period{Start: NewDate(1, time.January, 1), End: NewDate(9999, time.December, 31)}
}

// MonthOf returns the calendar month containing d.
func MonthOf(d Date) Period {
	return Period{Start: d.StartOfMonth(), End: d.EndOfMonth()}
}

// ParseMonth parses YYYY-MM into the matching calendar month.
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, apperr.NewParseError(s, "expected a month as YYYY-MM")
	}
	return MonthOf(NewDate(t.Year(), t.Month(), 1)), nil
}

// Contains reports whether d falls inside the period, boundaries included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Includes reports whether a transaction dated d counts toward a balance as of p.
// Everything up to and including End counts, however early.
func (p Period) Includes(d Date) bool { return !d.After(p.End) }

func (p Period) String() string { return fmt.Sprintf("%s..%s", p.Start, p.End) }
