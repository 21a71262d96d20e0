package daterange

import (
	"fmt"
	"iter"
	"time"

	"suitestay/pkg/clock"
	apperrors "suitestay/pkg/errors"
)

// Layout is the wire format for calendar dates. Dates are naive: parsed
// into midnight UTC and compared as-is, matching how the booking form
// submits them.
const Layout = "2006-01-02"

// DateRange is an inclusive span of calendar days. Both endpoints count
// as occupied: the entry day and the release day of a stay block the
// suite, so back-to-back stays may not share a boundary day.
type DateRange struct {
	Entry   time.Time
	Release time.Time
}

// New builds a validated range. minimumStayDays is the smallest allowed
// distance between entry and release; with the default of 1, a
// single-night stay (release one day after entry) is the shortest legal
// booking and entry == release is rejected.
func New(entry, release time.Time, minimumStayDays int) (DateRange, error) {
	if entry.IsZero() || release.IsZero() {
		return DateRange{}, apperrors.InvalidRange("both entry and release dates are required")
	}
	entry = clock.Midnight(entry)
	release = clock.Midnight(release)

	shortest := entry.AddDate(0, 0, minimumStayDays)
	if release.Before(shortest) {
		return DateRange{}, apperrors.InvalidRange(fmt.Sprintf(
			"release date must be at least %d day(s) after entry date", minimumStayDays))
	}

	return DateRange{Entry: entry, Release: release}, nil
}

// Parse builds a range from raw form input.
func Parse(rawEntry, rawRelease string, minimumStayDays int) (DateRange, error) {
	entry, err := time.Parse(Layout, rawEntry)
	if err != nil {
		return DateRange{}, apperrors.InvalidRange(fmt.Sprintf("entry date %q is not a valid date (want YYYY-MM-DD)", rawEntry))
	}
	release, err := time.Parse(Layout, rawRelease)
	if err != nil {
		return DateRange{}, apperrors.InvalidRange(fmt.Sprintf("release date %q is not a valid date (want YYYY-MM-DD)", rawRelease))
	}
	return New(entry, release, minimumStayDays)
}

// Days yields every calendar day from entry to release inclusive. The
// sequence is restartable; ranging over it twice walks the same days.
func (r DateRange) Days() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := r.Entry; !d.After(r.Release); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DayCount is the number of days Days yields.
func (r DateRange) DayCount() int {
	return int(r.Release.Sub(r.Entry).Hours()/24) + 1
}

// Nights is the number of nights the stay covers.
func (r DateRange) Nights() int {
	return r.DayCount() - 1
}

// Overlaps is the closed-interval test: true when the two ranges share
// at least one calendar day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Entry.After(other.Release) && !other.Entry.After(r.Release)
}

func (r DateRange) String() string {
	return r.Entry.Format(Layout) + ".." + r.Release.Format(Layout)
}
