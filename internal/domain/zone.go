package domain

import (
	"math"
	"time"
)

// SecondsPerDay converts per-day equipment rates into per-second tick rates.
const SecondsPerDay = 86400.0

// EquipmentUnit is a single yield-producing unit installed in a zone.
type EquipmentUnit struct {
	Name       string  `json:"name"`
	RatePerDay float64 `json:"rate_per_day"` // currency per day
}

// CapacityUnit is the active storage unit of a zone. Unlimited tiers
// ("auto" cargo) have no storage bound.
type CapacityUnit struct {
	Name       string  `json:"name"`
	MaxStorage float64 `json:"max_storage"`
	Unlimited  bool    `json:"unlimited"`
}

// Limit returns the storage bound, +Inf for unlimited tiers.
func (c CapacityUnit) Limit() float64 {
	if c.Unlimited {
		return math.Inf(1)
	}
	return c.MaxStorage
}

// ZoneSnapshot is the authoritative per-zone state as last observed from the
// remote authority. The engine never writes CollectedSoFar or
// LastCollectionAt itself; they are overwritten wholesale on refresh.
type ZoneSnapshot struct {
	Zone             int             `json:"zone"`
	Currency         Currency        `json:"currency"`
	Equipment        []EquipmentUnit `json:"equipment"`
	Capacity         CapacityUnit    `json:"capacity"`
	TotalYield       float64         `json:"total_yield"`
	CollectedSoFar   float64         `json:"collected_so_far"`
	LastCollectionAt time.Time       `json:"last_collection_at"`
}

// TickRate returns the accrual rate in currency per second.
func (z ZoneSnapshot) TickRate() float64 {
	total := 0.0
	for _, eq := range z.Equipment {
		total += eq.RatePerDay
	}
	return total / SecondsPerDay
}

// Remaining returns the extractable resource left in the zone.
func (z ZoneSnapshot) Remaining() float64 {
	return math.Max(0, z.TotalYield-z.CollectedSoFar)
}
