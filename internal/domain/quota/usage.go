package quota

import "time"

// NewUsage returns an empty row. An untilRefresh of zero disables the counter.
func NewUsage(projectID, resource string, untilRefresh int) *Usage {
	u := &Usage{ProjectID: projectID, Resource: resource}
	u.setUntilRefresh(untilRefresh)
	return u
}

func (u *Usage) setUntilRefresh(n int) {
	if n > 0 {
		u.UntilRefresh = &n
		return
	}
	u.UntilRefresh = nil
}

func (u *Usage) Total() int {
	return u.InUse + u.Reserved
}

// TickRefresh decrements the until_refresh counter when one is set and
// reports whether in_use must be resynced from actual usage. The age check
// only applies to rows without a counter.
func (u *Usage) TickRefresh(now time.Time, maxAge time.Duration) bool {
	if u.InUse < 0 {
		return true
	}
	if u.UntilRefresh != nil {
		n := *u.UntilRefresh - 1
		u.UntilRefresh = &n
		return n <= 0
	}
	return maxAge > 0 && !u.UpdatedAt.IsZero() && now.Sub(u.UpdatedAt) >= maxAge
}

// Resync overwrites in_use with the observed value and restarts the counter.
func (u *Usage) Resync(inUse, untilRefresh int) {
	u.InUse = inUse
	u.setUntilRefresh(untilRefresh)
}

// Hold adds a pending delta. Only allocations are held in reserved.
func (u *Usage) Hold(delta int) {
	if delta > 0 {
		u.Reserved += delta
	}
}

// Underflows reports whether a release would take in_use below zero.
func (u *Usage) Underflows(delta int) bool {
	return delta < 0 && u.InUse+delta < 0
}

// Apply commits a delta previously held with Hold.
func (u *Usage) Apply(delta int) {
	if delta >= 0 {
		u.Reserved -= delta
	}
	u.InUse += delta
	if u.InUse < 0 {
		// Drift is corrected by the next resync.
		u.InUse = 0
	}
}

// Release drops a delta previously held with Hold.
func (u *Usage) Release(delta int) {
	if delta > 0 {
		u.Reserved -= delta
	}
	if u.Reserved < 0 {
		u.Reserved = 0
	}
}
