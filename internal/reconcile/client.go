package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/metrics"
)

// Authority is the remote source of truth for player state.
type Authority interface {
	GetPlayerSnapshot(ctx context.Context, playerID string) (*domain.PlayerSnapshot, error)
	Collect(ctx context.Context, playerID string, zone int, marker time.Time) (*domain.PlayerSnapshot, error)
}

// FactSink receives authoritative zone facts. Implemented by the accrual
// simulator.
type FactSink interface {
	ActivateZone(playerID string, facts domain.ZoneSnapshot)
	ApplyFacts(playerID string, facts domain.ZoneSnapshot)
	DeactivateZone(playerID string, zone int)
	DeactivatePlayer(playerID string)
}

// DepositSink receives authoritative deposit state. Implemented by the stake
// manager.
type DepositSink interface {
	SyncDeposits(playerID string, deposits []domain.Deposit)
	DropPlayer(playerID string)
}

// playerState holds the last authoritative snapshot for one tracked player.
// generation increments on every confirmed mutation so a slow periodic
// refresh can never overwrite fresher state.
type playerState struct {
	snapshot   *domain.PlayerSnapshot
	generation uint64
	inFlight   map[int]bool
}

// Client reconciles local predicted state against the remote authority. It
// owns the tracked-player set, the periodic snapshot refresh, and the
// collection handoff, and it coalesces duplicate collection requests per
// zone while one is in flight.
type Client struct {
	mu      sync.Mutex
	players map[string]*playerState

	authority Authority
	facts     FactSink
	deposits  DepositSink
}

func NewClient(authority Authority) *Client {
	return &Client{
		players:   make(map[string]*playerState),
		authority: authority,
	}
}

// Bind wires the fact and deposit sinks. The sinks are constructed against
// the client, so they attach after construction; Bind must be called before
// the first Track.
func (c *Client) Bind(facts FactSink, deposits DepositSink) {
	c.facts = facts
	c.deposits = deposits
}

// Track fetches the player's authoritative snapshot and starts simulating
// their zones. Tracking an already tracked player refreshes it.
func (c *Client) Track(ctx context.Context, playerID string) (*domain.PlayerSnapshot, error) {
	log := logger.FromContext(ctx)

	snap, err := c.authority.GetPlayerSnapshot(ctx, playerID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	st, ok := c.players[playerID]
	if !ok {
		st = &playerState{inFlight: make(map[int]bool)}
		c.players[playerID] = st
	}
	prev := st.snapshot
	st.snapshot = snap
	st.generation++
	c.mu.Unlock()

	c.pushSnapshot(playerID, prev, snap, !ok)
	log.Info(LogMsgPlayerTracked, "playerID", playerID, "zones", len(snap.Zones))
	return snap.Clone(), nil
}

// Untrack stops simulating the player and drops their cached state.
func (c *Client) Untrack(ctx context.Context, playerID string) {
	c.mu.Lock()
	_, ok := c.players[playerID]
	delete(c.players, playerID)
	c.mu.Unlock()
	if !ok {
		return
	}

	c.facts.DeactivatePlayer(playerID)
	c.deposits.DropPlayer(playerID)
	logger.FromContext(ctx).Info(LogMsgPlayerUntracked, "playerID", playerID)
}

// Snapshot returns a copy of the last authoritative snapshot for the player.
func (c *Client) Snapshot(playerID string) (*domain.PlayerSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.players[playerID]
	if !ok || st.snapshot == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotTracked, playerID)
	}
	return st.snapshot.Clone(), nil
}

// TrackedPlayers returns the IDs of all currently tracked players.
func (c *Client) TrackedPlayers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.players))
	for id := range c.players {
		ids = append(ids, id)
	}
	return ids
}

// RefreshAll re-fetches the snapshot of every tracked player. Failures are
// logged and left for the next cycle; a refresh never blocks mutations.
func (c *Client) RefreshAll(ctx context.Context) {
	for _, playerID := range c.TrackedPlayers() {
		if err := c.refreshPlayer(ctx, playerID); err != nil {
			logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "playerID", playerID, "error", err)
			metrics.SnapshotRefreshFailures.Inc()
			continue
		}
		metrics.SnapshotRefreshes.Inc()
	}
}

// refreshPlayer fetches a fresh snapshot and applies it unless a confirmed
// mutation landed while the fetch was in flight, in which case the stale
// result is discarded.
func (c *Client) refreshPlayer(ctx context.Context, playerID string) error {
	c.mu.Lock()
	st, ok := c.players[playerID]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	startGen := st.generation
	c.mu.Unlock()

	snap, err := c.authority.GetPlayerSnapshot(ctx, playerID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	st, ok = c.players[playerID]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	if st.generation != startGen {
		c.mu.Unlock()
		logger.FromContext(ctx).Debug(LogMsgRefreshDiscarded, "playerID", playerID)
		return nil
	}
	prev := st.snapshot
	st.snapshot = snap
	c.mu.Unlock()

	c.pushSnapshot(playerID, prev, snap, false)
	logger.FromContext(ctx).Debug(LogMsgSnapshotRefreshed, "playerID", playerID)
	return nil
}

// Collect performs the authoritative collection for one zone. Duplicate
// requests for a zone with one already in flight are dropped, not queued.
// A stale marker response triggers a full re-fetch so the local state
// re-seeds from the authority.
func (c *Client) Collect(ctx context.Context, playerID string, zone int, marker time.Time) (*domain.PlayerSnapshot, error) {
	c.mu.Lock()
	st, ok := c.players[playerID]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotTracked, playerID)
	}
	if st.inFlight[zone] {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: zone %d", domain.ErrCollectionInFlight, zone)
	}
	st.inFlight[zone] = true
	c.mu.Unlock()

	metrics.CollectionsAttempted.WithLabelValues(fmt.Sprint(zone)).Inc()
	snap, err := c.authority.Collect(ctx, playerID, zone, marker)

	c.mu.Lock()
	if cur, still := c.players[playerID]; still && cur == st {
		delete(st.inFlight, zone)
		if err == nil {
			st.snapshot = snap
			st.generation++
		}
	}
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrStaleCollection) {
			logger.FromContext(ctx).Warn(LogMsgCollectionStale, "playerID", playerID, "zone", zone)
			if rerr := c.refreshPlayer(ctx, playerID); rerr != nil {
				logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "playerID", playerID, "error", rerr)
			}
		}
		return nil, err
	}

	c.syncDeposits(playerID, snap)
	return snap, nil
}

// Commit applies the result of a confirmed mutation (deposit lifecycle,
// conversion) to the cached snapshot and bumps the generation so in-flight
// refreshes cannot roll it back. apply runs with exclusive access to the
// snapshot.
func (c *Client) Commit(playerID string, apply func(snap *domain.PlayerSnapshot)) error {
	c.mu.Lock()
	st, ok := c.players[playerID]
	if !ok || st.snapshot == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotTracked, playerID)
	}
	apply(st.snapshot)
	st.generation++
	snap := st.snapshot
	c.mu.Unlock()

	c.syncDeposits(playerID, snap)
	return nil
}

// pushSnapshot fans authoritative facts out to the simulator and stake
// manager. Zones present before but absent now are deactivated.
func (c *Client) pushSnapshot(playerID string, prev, snap *domain.PlayerSnapshot, fresh bool) {
	for id, z := range snap.Zones {
		known := false
		if prev != nil {
			_, known = prev.Zones[id]
		}
		if fresh || !known {
			c.facts.ActivateZone(playerID, z)
		} else {
			c.facts.ApplyFacts(playerID, z)
		}
	}
	if prev != nil {
		for id := range prev.Zones {
			if _, still := snap.Zones[id]; !still {
				c.facts.DeactivateZone(playerID, id)
			}
		}
	}
	c.syncDeposits(playerID, snap)
}

func (c *Client) syncDeposits(playerID string, snap *domain.PlayerSnapshot) {
	deposits := make([]domain.Deposit, len(snap.Deposits))
	copy(deposits, snap.Deposits)
	c.deposits.SyncDeposits(playerID, deposits)
}
