package accrual

import "math"

// Enforcer provides pure cap logic (no state, no side effects). Its domain
// is closed over non-negative reals: unlimited cargo tiers are expressed as
// capacity = +Inf and fall out of the min naturally.
type Enforcer struct{}

// NewEnforcer creates a new cap enforcer
func NewEnforcer() *Enforcer {
	return &Enforcer{}
}

// Cap returns the maximum permissible accrued amount: the smaller of the
// equipment's storage bound and the zone's remaining extractable resource.
func (e *Enforcer) Cap(capacity, remaining float64) float64 {
	return math.Min(capacity, remaining)
}

// Clamp bounds a candidate counter value to [0, Cap(capacity, remaining)].
func (e *Enforcer) Clamp(candidate, capacity, remaining float64) float64 {
	return math.Max(0, math.Min(candidate, e.Cap(capacity, remaining)))
}
