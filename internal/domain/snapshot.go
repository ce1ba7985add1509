package domain

import "time"

// PlayerSnapshot is the last confirmed view of a player as reported by the
// remote authority. It is the reconciliation client's single owned value:
// no other component writes it, and the engine treats every field as an
// observation, not a fact it may extrapolate from.
type PlayerSnapshot struct {
	PlayerID  string               `json:"player_id"`
	Verified  bool                 `json:"verified"`
	Balances  map[Currency]float64 `json:"balances"`
	Zones     map[int]ZoneSnapshot `json:"zones"`
	Deposits  []Deposit            `json:"deposits"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// ZoneByID returns the snapshot for one zone.
func (s *PlayerSnapshot) ZoneByID(zone int) (ZoneSnapshot, bool) {
	z, ok := s.Zones[zone]
	return z, ok
}

// DepositByID returns the deposit with the given id, if present.
func (s *PlayerSnapshot) DepositByID(id string) (*Deposit, bool) {
	for i := range s.Deposits {
		if s.Deposits[i].ID == id {
			return &s.Deposits[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can hold a snapshot across a refresh
// without racing the reconciliation client's overwrite.
func (s *PlayerSnapshot) Clone() *PlayerSnapshot {
	if s == nil {
		return nil
	}
	out := &PlayerSnapshot{
		PlayerID:  s.PlayerID,
		Verified:  s.Verified,
		FetchedAt: s.FetchedAt,
	}
	if s.Balances != nil {
		out.Balances = make(map[Currency]float64, len(s.Balances))
		for c, v := range s.Balances {
			out.Balances[c] = v
		}
	}
	if s.Zones != nil {
		out.Zones = make(map[int]ZoneSnapshot, len(s.Zones))
		for id, z := range s.Zones {
			zc := z
			zc.Equipment = append([]EquipmentUnit(nil), z.Equipment...)
			out.Zones[id] = zc
		}
	}
	if s.Deposits != nil {
		out.Deposits = make([]Deposit, len(s.Deposits))
		copy(out.Deposits, s.Deposits)
		for i := range out.Deposits {
			if r := s.Deposits[i].ServerRemaining; r != nil {
				rc := *r
				out.Deposits[i].ServerRemaining = &rc
			}
			if b := s.Deposits[i].ServerReady; b != nil {
				bc := *b
				out.Deposits[i].ServerReady = &bc
			}
		}
	}
	return out
}
