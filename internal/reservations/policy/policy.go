package policy

import "time"

// CancellationPolicy decides whether a reservation may still be
// cancelled given how close its entry date is. Pure and total; callers
// turn a false into whatever refusal fits their surface.
type CancellationPolicy struct {
	MinimumNoticeDays int
}

func NewCancellationPolicy(minimumNoticeDays int) CancellationPolicy {
	return CancellationPolicy{MinimumNoticeDays: minimumNoticeDays}
}

// CanCancel is true when at least MinimumNoticeDays remain before
// entry. Exactly the notice window is still allowed.
func (p CancellationPolicy) CanCancel(entry, today time.Time) bool {
	notice := entry.Sub(today).Hours() / 24
	return notice >= float64(p.MinimumNoticeDays)
}
