package accrual

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cosmoforge/minecore/internal/clock"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/metrics"
	"github.com/cosmoforge/minecore/internal/notify"
)

// Collector performs the authoritative collection mutation. Implemented by
// the reconciliation client; the simulator never talks to the authority
// directly.
type Collector interface {
	Collect(ctx context.Context, playerID string, zone int, marker time.Time) (*domain.PlayerSnapshot, error)
}

// Broadcaster publishes counter and capacity updates to subscribers.
type Broadcaster interface {
	Broadcast(eventType, key string, payload interface{})
}

// ZoneView is a read-only view of one zone's predicted state.
type ZoneView struct {
	Zone       int             `json:"zone"`
	Currency   domain.Currency `json:"currency"`
	Counter    float64         `json:"counter"`
	TickRate   float64         `json:"tick_rate"`
	Cap        float64         `json:"cap"`
	AtCapacity bool            `json:"at_capacity"`
}

type zoneKey struct {
	player string
	zone   int
}

// zoneState is the predicted accrual state of one (player, zone) pair. The
// simulator is its only writer.
type zoneState struct {
	facts      domain.ZoneSnapshot
	tickRate   float64
	counter    float64
	lastTick   time.Time
	atCapacity bool
	collecting bool

	// lastBroadcast and lastSent throttle counter pushes to
	// CounterBroadcastInterval while the counter is moving.
	lastBroadcast time.Time
	lastSent      float64
}

// Simulator owns the per-zone predicted counters: a continuously advancing,
// capped prediction of what the authority would credit on collection. It
// never mutates authoritative state; collection is handed off to the
// Collector and the counter resets only on confirmation.
type Simulator struct {
	mu       sync.Mutex
	zones    map[zoneKey]*zoneState
	enforcer *Enforcer

	clk       clock.Clock
	collector Collector
	hub       Broadcaster

	tickInterval time.Duration
	quit         chan struct{}
	wg           sync.WaitGroup
}

// NewSimulator creates a simulator ticking at the given interval. A zero
// interval selects the default.
func NewSimulator(clk clock.Clock, collector Collector, hub Broadcaster, tickInterval time.Duration) *Simulator {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Simulator{
		zones:        make(map[zoneKey]*zoneState),
		enforcer:     NewEnforcer(),
		clk:          clk,
		collector:    collector,
		hub:          hub,
		tickInterval: tickInterval,
		quit:         make(chan struct{}),
	}
}

// Start begins the tick loop.
func (s *Simulator) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop cancels the tick loop. Zones stay registered; a restarted loop
// re-seeds nothing by itself, so callers deactivating a session should also
// call DeactivatePlayer to avoid background advancement with stale rates.
func (s *Simulator) Stop() {
	close(s.quit)
	s.wg.Wait()
}

// ActivateZone registers a zone and seeds its counter from the authoritative
// last-collection time: counter = clamp(tickRate * elapsed, cap). This
// reproduces server-side accrual across page loads without waiting for a
// network round-trip.
func (s *Simulator) ActivateZone(playerID string, facts domain.ZoneSnapshot) {
	now := s.clk.Now()
	rate := facts.TickRate()
	seed := s.enforcer.Clamp(rate*now.Sub(facts.LastCollectionAt).Seconds(), facts.Capacity.Limit(), facts.Remaining())

	s.mu.Lock()
	key := zoneKey{playerID, facts.Zone}
	st := &zoneState{
		facts:    facts,
		tickRate: rate,
		counter:  seed,
		lastTick: now,
	}
	st.atCapacity = s.isAtCap(st)
	s.zones[key] = st
	s.mu.Unlock()

	logger.FromContext(context.Background()).Info(LogMsgZoneActivated,
		"playerID", playerID, "zone", facts.Zone, "seed", seed, "tickRate", rate)
	s.publishCounter(playerID, facts.Zone)
}

// DeactivateZone forgets a zone. Re-activation re-seeds from a fresh
// snapshot rather than resuming the old counter.
func (s *Simulator) DeactivateZone(playerID string, zone int) {
	s.mu.Lock()
	delete(s.zones, zoneKey{playerID, zone})
	s.mu.Unlock()
	logger.FromContext(context.Background()).Info(LogMsgZoneDeactivated, "playerID", playerID, "zone", zone)
}

// DeactivatePlayer forgets all of a player's zones.
func (s *Simulator) DeactivatePlayer(playerID string) {
	s.mu.Lock()
	for key := range s.zones {
		if key.player == playerID {
			delete(s.zones, key)
		}
	}
	s.mu.Unlock()
}

// ApplyFacts overwrites a zone's equipment/resource facts from a refreshed
// authoritative snapshot. The predicted counter is left alone unless the
// authoritative collection marker moved (a collection happened in another
// session), in which case the counter is re-seeded rather than left stale.
func (s *Simulator) ApplyFacts(playerID string, facts domain.ZoneSnapshot) {
	s.mu.Lock()
	st, ok := s.zones[zoneKey{playerID, facts.Zone}]
	if !ok {
		s.mu.Unlock()
		return
	}

	collectedElsewhere := !facts.LastCollectionAt.Equal(st.facts.LastCollectionAt)
	st.facts = facts
	st.tickRate = facts.TickRate()

	now := s.clk.Now()
	if collectedElsewhere {
		st.counter = s.enforcer.Clamp(st.tickRate*now.Sub(facts.LastCollectionAt).Seconds(), facts.Capacity.Limit(), facts.Remaining())
		st.lastTick = now
	} else {
		// Facts may have shrunk the cap; never exceed it
		st.counter = s.enforcer.Clamp(st.counter, facts.Capacity.Limit(), facts.Remaining())
	}
	st.atCapacity = s.isAtCap(st)
	s.mu.Unlock()

	if collectedElsewhere {
		logger.FromContext(context.Background()).Info(LogMsgZoneReseeded, "playerID", playerID, "zone", facts.Zone)
	}
	s.publishCounter(playerID, facts.Zone)
}

// Tick advances every active zone by the wall-clock time elapsed since its
// last tick. Counters freeze at their cap; that is the observable
// "cargo full" state, not an error.
func (s *Simulator) Tick() {
	now := s.clk.Now()

	type capEvent struct {
		player string
		st     *zoneState
	}
	var reached []capEvent

	type counterEvent struct {
		zone    int
		payload notify.CounterPayload
	}
	var moved []counterEvent

	s.mu.Lock()
	for key, st := range s.zones {
		dt := now.Sub(st.lastTick).Seconds()
		if dt < 0 {
			dt = 0
		}
		st.lastTick = now
		st.counter = s.enforcer.Clamp(st.counter+st.tickRate*dt, st.facts.Capacity.Limit(), st.facts.Remaining())

		was := st.atCapacity
		st.atCapacity = s.isAtCap(st)
		if st.atCapacity && !was {
			reached = append(reached, capEvent{key.player, st})
		}

		if st.counter != st.lastSent && now.Sub(st.lastBroadcast) >= CounterBroadcastInterval {
			st.lastBroadcast = now
			st.lastSent = st.counter
			moved = append(moved, counterEvent{st.facts.Zone, notify.CounterPayload{
				Zone:       st.facts.Zone,
				Counter:    st.counter,
				TickRate:   st.tickRate,
				AtCapacity: st.atCapacity,
			}})
		}
	}
	s.mu.Unlock()

	for _, ev := range reached {
		s.hub.Broadcast(notify.EventTypeCapacityReached, notify.ZoneKey(ev.st.facts.Zone), notify.CapacityPayload{
			Zone:       ev.st.facts.Zone,
			AtCapacity: true,
			Counter:    ev.st.counter,
		})
	}
	for _, ev := range moved {
		s.hub.Broadcast(notify.EventTypeCounter, notify.ZoneKey(ev.zone), ev.payload)
	}
}

// Counter returns the current predicted counter for a zone.
func (s *Simulator) Counter(playerID string, zone int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.zones[zoneKey{playerID, zone}]
	if !ok {
		return 0, fmt.Errorf("%w: zone %d", domain.ErrZoneNotActive, zone)
	}
	return st.counter, nil
}

// IsAtCapacity reports whether a zone's counter is frozen at its cap.
func (s *Simulator) IsAtCapacity(playerID string, zone int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.zones[zoneKey{playerID, zone}]
	if !ok {
		return false, fmt.Errorf("%w: zone %d", domain.ErrZoneNotActive, zone)
	}
	return st.atCapacity, nil
}

// View returns read-only views of all active zones for a player.
func (s *Simulator) View(playerID string) []ZoneView {
	s.mu.Lock()
	defer s.mu.Unlock()
	var views []ZoneView
	for key, st := range s.zones {
		if key.player != playerID {
			continue
		}
		views = append(views, ZoneView{
			Zone:       st.facts.Zone,
			Currency:   st.facts.Currency,
			Counter:    st.counter,
			TickRate:   st.tickRate,
			Cap:        s.enforcer.Cap(st.facts.Capacity.Limit(), st.facts.Remaining()),
			AtCapacity: st.atCapacity,
		})
	}
	return views
}

// Collect hands the zone's accrual off to the authority as an idempotent
// collection command keyed by the last authoritative collection time. The
// counter is not touched until the authority confirms; on failure it keeps
// advancing and the user may retry. Duplicate requests while one is in
// flight are dropped, not queued.
func (s *Simulator) Collect(ctx context.Context, playerID string, zone int) (float64, error) {
	log := logger.FromContext(ctx)
	key := zoneKey{playerID, zone}

	s.mu.Lock()
	st, ok := s.zones[key]
	if !ok {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: zone %d", domain.ErrZoneNotActive, zone)
	}
	if st.collecting {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: zone %d", domain.ErrCollectionInFlight, zone)
	}
	if st.counter <= 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: zone %d", domain.ErrNothingToCollect, zone)
	}
	st.collecting = true
	marker := st.facts.LastCollectionAt
	prevCollected := st.facts.CollectedSoFar
	s.mu.Unlock()

	snap, err := s.collector.Collect(ctx, playerID, zone, marker)

	s.mu.Lock()
	// The zone may have been deactivated while the request was in flight
	if cur, still := s.zones[key]; still && cur == st {
		st.collecting = false
		if err == nil {
			if z, found := snap.ZoneByID(zone); found {
				st.facts = z
				st.tickRate = z.TickRate()
			}
			st.counter = 0
			st.lastTick = s.clk.Now()
			st.atCapacity = s.isAtCap(st)
		}
	}
	s.mu.Unlock()

	if err != nil {
		log.Warn(LogMsgCollectFailed, "playerID", playerID, "zone", zone, "error", err)
		metrics.CollectionsFailed.WithLabelValues(fmt.Sprint(zone)).Inc()
		return 0, err
	}

	amount := 0.0
	currency := domain.Currency("")
	if z, found := snap.ZoneByID(zone); found {
		amount = math.Max(0, z.CollectedSoFar-prevCollected)
		currency = z.Currency
	}

	log.Info(LogMsgCollectConfirmed, "playerID", playerID, "zone", zone, "amount", amount)
	metrics.CollectionsConfirmed.WithLabelValues(fmt.Sprint(zone)).Inc()

	s.hub.Broadcast(notify.EventTypeCollected, notify.ZoneKey(zone), notify.CollectedPayload{
		Zone:     zone,
		Amount:   amount,
		Currency: currency,
	})
	s.publishCounter(playerID, zone)

	return amount, nil
}

// isAtCap must be called with the mutex held.
func (s *Simulator) isAtCap(st *zoneState) bool {
	limit := s.enforcer.Cap(st.facts.Capacity.Limit(), st.facts.Remaining())
	return !math.IsInf(limit, 1) && st.counter >= limit
}

func (s *Simulator) publishCounter(playerID string, zone int) {
	s.mu.Lock()
	st, ok := s.zones[zoneKey{playerID, zone}]
	if !ok {
		s.mu.Unlock()
		return
	}
	st.lastBroadcast = s.clk.Now()
	st.lastSent = st.counter
	payload := notify.CounterPayload{
		Zone:       st.facts.Zone,
		Counter:    st.counter,
		TickRate:   st.tickRate,
		AtCapacity: st.atCapacity,
	}
	s.mu.Unlock()
	s.hub.Broadcast(notify.EventTypeCounter, notify.ZoneKey(zone), payload)
}
