package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapacityLimit(t *testing.T) {
	bounded := CapacityUnit{Name: "hold", MaxStorage: 50}
	assert.Equal(t, 50.0, bounded.Limit())

	auto := CapacityUnit{Name: "auto", Unlimited: true}
	assert.True(t, math.IsInf(auto.Limit(), 1))
}

func TestTickRateSumsEquipment(t *testing.T) {
	z := ZoneSnapshot{Equipment: []EquipmentUnit{
		{Name: "excavator", RatePerDay: 86400},
		{Name: "drill", RatePerDay: 43200},
	}}
	assert.InDelta(t, 1.5, z.TickRate(), 1e-9)

	assert.Equal(t, 0.0, ZoneSnapshot{}.TickRate())
}

func TestRemainingNeverNegative(t *testing.T) {
	z := ZoneSnapshot{TotalYield: 100, CollectedSoFar: 60}
	assert.Equal(t, 40.0, z.Remaining())

	over := ZoneSnapshot{TotalYield: 100, CollectedSoFar: 120}
	assert.Equal(t, 0.0, over.Remaining())
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	rem := time.Minute
	snap := &PlayerSnapshot{
		PlayerID: "p1",
		Balances: map[Currency]float64{CurrencyCS: 100},
		Zones: map[int]ZoneSnapshot{
			1: {Zone: 1, Equipment: []EquipmentUnit{{Name: "drill", RatePerDay: 10}}},
		},
		Deposits: []Deposit{{ID: "d1", ServerRemaining: &rem}},
	}

	clone := snap.Clone()
	clone.Balances[CurrencyCS] = 0
	clone.Zones[2] = ZoneSnapshot{Zone: 2}
	z := clone.Zones[1]
	z.Equipment[0].RatePerDay = 99
	*clone.Deposits[0].ServerRemaining = time.Hour

	assert.Equal(t, 100.0, snap.Balances[CurrencyCS])
	assert.Len(t, snap.Zones, 1)
	assert.Equal(t, 10.0, snap.Zones[1].Equipment[0].RatePerDay)
	assert.Equal(t, time.Minute, *snap.Deposits[0].ServerRemaining)
}

func TestOutOfRangeError(t *testing.T) {
	err := &OutOfRangeError{Amount: 100, Min: 200, Max: 1000000}
	assert.Contains(t, err.Error(), "100")
	assert.Contains(t, err.Error(), "200")
}
