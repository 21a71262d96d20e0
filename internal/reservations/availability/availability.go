package availability

import (
	"sort"
	"time"

	"suitestay/pkg/daterange"
	"suitestay/pkg/model"
)

// Index is the set of calendar days a suite is already occupied,
// derived from its current reservations. It is rebuilt from a fresh
// store read on every validation; caching one across requests would
// reopen the double-booking window.
type Index struct {
	SuiteID     string
	blockedDays map[time.Time]struct{}
}

// Build filters reservations down to the given suite and unions every
// day of every stay, entry and release days included.
func Build(suiteID string, reservations []*model.Reservation) *Index {
	idx := &Index{
		SuiteID:     suiteID,
		blockedDays: make(map[time.Time]struct{}),
	}

	for _, res := range reservations {
		if res.SuiteID != suiteID {
			continue
		}
		for day := range res.Range().Days() {
			idx.blockedDays[day] = struct{}{}
		}
	}

	return idx
}

// IsFree reports whether no day of the requested range is blocked.
// Because release days block too, a stay may not begin on another
// stay's release day.
func (idx *Index) IsFree(r daterange.DateRange) bool {
	for day := range r.Days() {
		if _, blocked := idx.blockedDays[day]; blocked {
			return false
		}
	}
	return true
}

// Contains reports whether a single day is occupied. The calendar
// widget uses this to grey out days.
func (idx *Index) Contains(day time.Time) bool {
	_, blocked := idx.blockedDays[day]
	return blocked
}

// Conflicts returns the days of the requested range that are already
// occupied, sorted, for diagnostic display.
func (idx *Index) Conflicts(r daterange.DateRange) []time.Time {
	var conflicting []time.Time
	for day := range r.Days() {
		if _, blocked := idx.blockedDays[day]; blocked {
			conflicting = append(conflicting, day)
		}
	}
	return conflicting
}

// BlockedDays returns every occupied day in order.
func (idx *Index) BlockedDays() []time.Time {
	days := make([]time.Time, 0, len(idx.blockedDays))
	for day := range idx.blockedDays {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
