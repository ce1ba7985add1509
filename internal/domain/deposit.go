package domain

import "time"

// Currency identifies an in-game or on-chain currency.
type Currency string

// Currencies known to the engine. The authority may introduce more; the
// engine treats them opaquely outside the exchange tables.
const (
	CurrencyCCC Currency = "CCC"
	CurrencyCS  Currency = "CS"
	CurrencyTON Currency = "TON"
)

// TimeUnit is the unit a deposit plan's duration is expressed in. It is data
// carried on the plan (accelerated "minutes" in test deployments, "days" in
// production), never inferred from the duration's magnitude.
type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitDays    TimeUnit = "days"
)

// Span converts n units into a wall-clock duration.
func (u TimeUnit) Span(n int) time.Duration {
	switch u {
	case UnitMinutes:
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * 24 * time.Hour
	}
}

// DepositStatus is the lifecycle state of a stake.
type DepositStatus string

const (
	DepositActive    DepositStatus = "active"
	DepositWithdrawn DepositStatus = "withdrawn"
	DepositCancelled DepositStatus = "cancelled"
)

// Plan is a server-quoted deposit term. The engine never invents the return
// percentage locally; plans come from the authority's calculate-plans query.
type Plan struct {
	Duration int      `json:"duration"`
	Unit     TimeUnit `json:"unit"`
	Percent  float64  `json:"percent"`
}

// Deposit is a fixed-term, fixed-return currency lock. ReturnAmount is set
// once at creation and never recomputed afterwards.
type Deposit struct {
	ID            string        `json:"id"`
	PlayerID      string        `json:"player_id"`
	Zone          int           `json:"zone"`
	Principal     float64       `json:"principal"`
	Currency      Currency      `json:"currency"`
	Plan          Plan          `json:"plan"`
	ReturnAmount  float64       `json:"return_amount"`
	StartedAt     time.Time     `json:"started_at"`
	Status        DepositStatus `json:"status"`
	PenaltyAmount float64       `json:"penalty_amount,omitempty"`

	// Authority-supplied maturity facts. When present they override any
	// client-computed fallback (server truth wins on conflict).
	ServerRemaining *time.Duration `json:"server_remaining,omitempty"`
	ServerReady     *bool          `json:"server_ready,omitempty"`
}

// EndTime is the committed maturation moment.
func (d Deposit) EndTime() time.Time {
	return d.StartedAt.Add(d.Plan.Unit.Span(d.Plan.Duration))
}

// RemainingAt returns the time left until maturation. The authority's value
// takes precedence over the wall-clock fallback when supplied.
func (d Deposit) RemainingAt(now time.Time) time.Duration {
	if d.ServerRemaining != nil {
		return *d.ServerRemaining
	}
	rem := d.EndTime().Sub(now)
	if rem < 0 {
		return 0
	}
	return rem
}

// ReadyAt reports whether the deposit has matured. The authority's flag wins
// over the fallback comparison; the fallback is a display approximation and
// must not alone enable a withdrawal.
func (d Deposit) ReadyAt(now time.Time) bool {
	if d.ServerReady != nil {
		return *d.ServerReady
	}
	return !now.Before(d.EndTime())
}

// ProgressAt returns maturation progress in percent, clamped to [0, 100].
func (d Deposit) ProgressAt(now time.Time) float64 {
	total := d.EndTime().Sub(d.StartedAt)
	if total <= 0 {
		return 100
	}
	p := float64(now.Sub(d.StartedAt)) / float64(total)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p * 100
}
