package dates

import (
	"fmt"
	"time"
)

// Transactions store calendar days as absolute instants pinned to noon UTC.
// Noon keeps the calendar day stable under any viewer timezone conversion
// (offsets never exceed 12 hours in practice).
const canonicalHour = 12

// dayLayout is the accepted date-only input format.
const dayLayout = "2006-01-02"

// Canonical returns the canonical instant for the given calendar day.
func Canonical(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, canonicalHour, 0, 0, 0, time.UTC)
}

// Normalize canonicalizes any instant to the noon-UTC representation of its
// UTC calendar day. Normalizing an already-canonical value is a no-op, so the
// operation is idempotent and never drifts the day.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return Canonical(u.Year(), u.Month(), u.Day())
}

// IsCanonical reports whether t is already in the canonical representation.
func IsCanonical(t time.Time) bool {
	return !t.IsZero() && t.Equal(Normalize(t))
}

// ParseDay parses a date-only string ("2006-01-02") or a full RFC3339
// timestamp into the canonical representation of its calendar day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return Canonical(t.Year(), t.Month(), t.Day()), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return Normalize(t), nil
}

// FormatDay renders the canonical calendar day as "2006-01-02".
func FormatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Month0 returns the zero-indexed month (0-11) of the canonical day, the
// form persisted alongside transactions for range-query indexing.
func Month0(t time.Time) int {
	return int(t.UTC().Month()) - 1
}

// Year returns the calendar year of the canonical day.
func Year(t time.Time) int {
	return t.UTC().Year()
}

// AddMonths advances the canonical day by n calendar months, clamping to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29, never Mar 3).
func AddMonths(t time.Time, n int) time.Time {
	u := t.UTC()
	year, month, day := u.Year(), u.Month(), u.Day()

	// Compute the target month arithmetically so day overflow cannot
	// spill into the following month.
	m := int(month) - 1 + n
	targetYear := year + m/12
	targetMonth := time.Month(m%12 + 1)
	if m < 0 {
		targetYear = year + (m-11)/12
		targetMonth = time.Month((m%12+12)%12 + 1)
	}

	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}
	return Canonical(targetYear, targetMonth, day)
}

// MonthWindow returns the canonical first and last day of the month
// containing t, for inclusive range queries.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	first := Canonical(u.Year(), u.Month(), 1)
	last := Canonical(u.Year(), u.Month(), daysIn(u.Year(), u.Month()))
	return first, last
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
