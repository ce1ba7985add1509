package stake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/cosmoforge/minecore/internal/authority"
	"github.com/cosmoforge/minecore/internal/clock"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/metrics"
	"github.com/cosmoforge/minecore/internal/notify"
)

// Authority is the subset of the remote API the stake service drives.
type Authority interface {
	CalculatePlans(ctx context.Context, playerID string, zone int, principal float64) ([]domain.Plan, error)
	CreateDeposit(ctx context.Context, playerID string, zone int, principal float64, plan domain.Plan) (*domain.Deposit, error)
	WithdrawDeposit(ctx context.Context, playerID, depositID string) (*authority.WithdrawResult, error)
	CancelDeposit(ctx context.Context, playerID, depositID string) (*authority.CancelResult, error)
}

// Committer applies confirmed mutation results to the cached authoritative
// snapshot. Implemented by the reconciliation client.
type Committer interface {
	Commit(playerID string, apply func(snap *domain.PlayerSnapshot)) error
}

// Broadcaster publishes deposit lifecycle events to subscribers.
type Broadcaster interface {
	Broadcast(eventType, key string, payload interface{})
}

// Recorder persists an audit record of a confirmed mutation.
type Recorder interface {
	Record(ctx context.Context, playerID, action string, details interface{})
}

// DepositView is one deposit with its display-time maturation state.
type DepositView struct {
	domain.Deposit
	Ready            bool    `json:"ready"`
	RemainingSeconds int64   `json:"remaining_seconds"`
	Progress         float64 `json:"progress"`
	CancelReturn     float64 `json:"cancel_return,omitempty"`
}

// Service manages the fixed-term deposit lifecycle: plan quoting, creation,
// maturation tracking, withdrawal and early cancellation.
type Service interface {
	Plans(ctx context.Context, playerID string, zone int, principal float64) ([]domain.Plan, error)
	Create(ctx context.Context, playerID string, zone int, principal float64, plan domain.Plan) (*domain.Deposit, error)
	Withdraw(ctx context.Context, playerID, depositID string) (*domain.Deposit, error)
	Cancel(ctx context.Context, playerID, depositID string) (*domain.Deposit, error)
	View(playerID string) []DepositView

	SyncDeposits(playerID string, deposits []domain.Deposit)
	DropPlayer(playerID string)
	RefreshTick(ctx context.Context)
}

type service struct {
	mu        sync.Mutex
	deposits  map[string][]domain.Deposit
	announced map[string]bool

	authority Authority
	committer Committer
	hub       Broadcaster
	recorder  Recorder
	clk       clock.Clock

	// penaltyRate is the display-side projection of the cancellation
	// penalty. The authority computes the real figure on cancel.
	penaltyRate float64

	planCache *expirable.LRU[string, []domain.Plan]
}

func NewService(auth Authority, committer Committer, hub Broadcaster, recorder Recorder, clk clock.Clock, penaltyRate float64) Service {
	return &service{
		deposits:    make(map[string][]domain.Deposit),
		announced:   make(map[string]bool),
		authority:   auth,
		committer:   committer,
		hub:         hub,
		recorder:    recorder,
		clk:         clk,
		penaltyRate: penaltyRate,
		planCache:   expirable.NewLRU[string, []domain.Plan](PlanCacheSize, nil, PlanCacheTTL),
	}
}

// Plans returns the authority's quoted terms for a principal. Quotes are
// cached briefly; the percentages are never derived locally.
func (s *service) Plans(ctx context.Context, playerID string, zone int, principal float64) ([]domain.Plan, error) {
	key := fmt.Sprintf("%s|%d|%g", playerID, zone, principal)
	if plans, ok := s.planCache.Get(key); ok {
		return plans, nil
	}

	plans, err := s.authority.CalculatePlans(ctx, playerID, zone, principal)
	if err != nil {
		return nil, err
	}

	s.planCache.Add(key, plans)
	logger.FromContext(ctx).Debug(LogMsgPlansQuoted, "playerID", playerID, "zone", zone, "plans", len(plans))
	return plans, nil
}

// Create locks a principal into a quoted plan. The return amount in the
// authority's response is fixed for the deposit's whole life.
func (s *service) Create(ctx context.Context, playerID string, zone int, principal float64, plan domain.Plan) (*domain.Deposit, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", domain.ErrInvalidInput)
	}

	dep, err := s.authority.CreateDeposit(ctx, playerID, zone, principal, plan)
	if err != nil {
		return nil, err
	}

	if cerr := s.committer.Commit(playerID, func(snap *domain.PlayerSnapshot) {
		if snap.Balances == nil {
			snap.Balances = make(map[domain.Currency]float64)
		}
		snap.Balances[dep.Currency] -= dep.Principal
		snap.Deposits = append(snap.Deposits, *dep)
	}); cerr != nil {
		logger.FromContext(ctx).Warn(LogMsgDepositCreated, "playerID", playerID, "error", cerr)
	}

	logger.FromContext(ctx).Info(LogMsgDepositCreated,
		"playerID", playerID, "depositID", dep.ID, "principal", dep.Principal, "return", dep.ReturnAmount)
	metrics.StakeTransitions.WithLabelValues(TransitionCreated).Inc()
	s.record(ctx, playerID, ActionDepositCreated, dep)
	s.publish(notify.EventTypeStakeUpdated, *dep)

	return dep, nil
}

// Withdraw transfers a matured deposit's return amount to the player's
// balance. The readiness check honors the authority's flag when present;
// a locally elapsed countdown alone is not enough.
func (s *service) Withdraw(ctx context.Context, playerID, depositID string) (*domain.Deposit, error) {
	log := logger.FromContext(ctx)

	dep, err := s.lookup(playerID, depositID)
	if err != nil {
		return nil, err
	}
	if dep.Status != domain.DepositActive {
		log.Warn(LogMsgWithdrawRejected, "depositID", depositID, "status", dep.Status)
		return nil, fmt.Errorf("%w: %s", domain.ErrDepositFinalized, depositID)
	}
	if !dep.ReadyAt(s.clk.Now()) {
		log.Warn(LogMsgWithdrawRejected, "depositID", depositID, "reason", "not matured")
		return nil, fmt.Errorf("%w: %s", domain.ErrDepositNotReady, depositID)
	}

	res, err := s.authority.WithdrawDeposit(ctx, playerID, depositID)
	if err != nil {
		return nil, err
	}

	if cerr := s.committer.Commit(playerID, func(snap *domain.PlayerSnapshot) {
		snap.Balances = res.Balances
		replaceDeposit(snap, res.Deposit)
	}); cerr != nil {
		log.Warn(LogMsgDepositWithdrawn, "playerID", playerID, "error", cerr)
	}

	log.Info(LogMsgDepositWithdrawn, "playerID", playerID, "depositID", depositID, "amount", res.Deposit.ReturnAmount)
	metrics.StakeTransitions.WithLabelValues(TransitionWithdrawn).Inc()
	s.record(ctx, playerID, ActionDepositWithdrawn, res.Deposit)
	s.publish(notify.EventTypeStakeWithdrawn, res.Deposit)

	return &res.Deposit, nil
}

// Cancel breaks an active deposit before maturity for the penalized
// principal. A deposit that has reached readiness can no longer be
// cancelled, only withdrawn.
func (s *service) Cancel(ctx context.Context, playerID, depositID string) (*domain.Deposit, error) {
	log := logger.FromContext(ctx)

	dep, err := s.lookup(playerID, depositID)
	if err != nil {
		return nil, err
	}
	if dep.Status != domain.DepositActive {
		log.Warn(LogMsgCancelRejected, "depositID", depositID, "status", dep.Status)
		return nil, fmt.Errorf("%w: %s", domain.ErrDepositFinalized, depositID)
	}
	if dep.ReadyAt(s.clk.Now()) {
		log.Warn(LogMsgCancelRejected, "depositID", depositID, "reason", "already matured")
		return nil, fmt.Errorf("%w: %s", domain.ErrDepositMatured, depositID)
	}

	res, err := s.authority.CancelDeposit(ctx, playerID, depositID)
	if err != nil {
		return nil, err
	}

	if cerr := s.committer.Commit(playerID, func(snap *domain.PlayerSnapshot) {
		snap.Balances = res.Balances
		replaceDeposit(snap, res.Deposit)
	}); cerr != nil {
		log.Warn(LogMsgDepositCancelled, "playerID", playerID, "error", cerr)
	}

	log.Info(LogMsgDepositCancelled,
		"playerID", playerID, "depositID", depositID,
		"returned", res.ReturnedAmount, "penalty", res.PenaltyAmount)
	metrics.StakeTransitions.WithLabelValues(TransitionCancelled).Inc()
	s.record(ctx, playerID, ActionDepositCancelled, res.Deposit)
	s.publish(notify.EventTypeStakeCancelled, res.Deposit)

	return &res.Deposit, nil
}

// View returns all of a player's deposits with display-time maturation
// state computed against the local clock.
func (s *service) View(playerID string) []DepositView {
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]DepositView, 0, len(s.deposits[playerID]))
	for _, dep := range s.deposits[playerID] {
		view := DepositView{
			Deposit:          dep,
			Ready:            dep.ReadyAt(now),
			RemainingSeconds: int64(dep.RemainingAt(now) / time.Second),
			Progress:         dep.ProgressAt(now),
		}
		if dep.Status == domain.DepositActive && !view.Ready {
			view.CancelReturn = dep.Principal * (1 - s.penaltyRate)
		}
		views = append(views, view)
	}
	return views
}

// SyncDeposits replaces the tracked deposit set for a player with the
// authoritative one.
func (s *service) SyncDeposits(playerID string, deposits []domain.Deposit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]bool, len(deposits))
	for _, dep := range deposits {
		current[dep.ID] = true
	}
	for _, dep := range s.deposits[playerID] {
		if !current[dep.ID] {
			delete(s.announced, dep.ID)
		}
	}
	s.deposits[playerID] = deposits
}

// DropPlayer forgets a player's deposits.
func (s *service) DropPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dep := range s.deposits[playerID] {
		delete(s.announced, dep.ID)
	}
	delete(s.deposits, playerID)
}

// RefreshTick recomputes every active deposit's countdown, publishes the
// updated state and announces maturations exactly once per deposit.
func (s *service) RefreshTick(ctx context.Context) {
	now := s.clk.Now()

	s.mu.Lock()
	var updates, matured []domain.Deposit
	for _, deps := range s.deposits {
		for _, dep := range deps {
			if dep.Status != domain.DepositActive {
				continue
			}
			updates = append(updates, dep)
			if dep.ReadyAt(now) && !s.announced[dep.ID] {
				s.announced[dep.ID] = true
				matured = append(matured, dep)
			}
		}
	}
	s.mu.Unlock()

	for _, dep := range updates {
		s.publish(notify.EventTypeStakeUpdated, dep)
	}
	for _, dep := range matured {
		logger.FromContext(ctx).Info(LogMsgDepositMatured, "playerID", dep.PlayerID, "depositID", dep.ID)
		metrics.StakeTransitions.WithLabelValues(TransitionMatured).Inc()
		s.publish(notify.EventTypeStakeMatured, dep)
	}
}

func (s *service) lookup(playerID, depositID string) (domain.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dep := range s.deposits[playerID] {
		if dep.ID == depositID {
			return dep, nil
		}
	}
	return domain.Deposit{}, fmt.Errorf("%w: %s", domain.ErrDepositNotFound, depositID)
}

func (s *service) publish(eventType string, dep domain.Deposit) {
	now := s.clk.Now()
	s.hub.Broadcast(eventType, notify.DepositKey(dep.ID), notify.StakePayload{
		DepositID:        dep.ID,
		Zone:             dep.Zone,
		Status:           dep.Status,
		Ready:            dep.ReadyAt(now),
		RemainingSeconds: int64(dep.RemainingAt(now) / time.Second),
		Progress:         dep.ProgressAt(now),
		ReturnAmount:     dep.ReturnAmount,
		PenaltyAmount:    dep.PenaltyAmount,
	})
}

func (s *service) record(ctx context.Context, playerID, action string, details interface{}) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, playerID, action, details)
}

func replaceDeposit(snap *domain.PlayerSnapshot, dep domain.Deposit) {
	for i := range snap.Deposits {
		if snap.Deposits[i].ID == dep.ID {
			snap.Deposits[i] = dep
			return
		}
	}
	snap.Deposits = append(snap.Deposits, dep)
}
