package exchange

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosmoforge/minecore/internal/authority"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/metrics"
)

// Authority is the subset of the remote API the exchange service drives.
type Authority interface {
	Convert(ctx context.Context, playerID string, amount float64, from, to domain.Currency) (*authority.ConvertResult, error)
}

// Committer applies confirmed mutation results to the cached authoritative
// snapshot and exposes it for pre-checks. Implemented by the reconciliation
// client.
type Committer interface {
	Snapshot(playerID string) (*domain.PlayerSnapshot, error)
	Commit(playerID string, apply func(snap *domain.PlayerSnapshot)) error
}

// Recorder persists an audit record of a confirmed mutation.
type Recorder interface {
	Record(ctx context.Context, playerID, action string, details interface{})
}

type pair struct {
	from domain.Currency
	to   domain.Currency
}

// Service converts currencies through the remote authority. The rate table
// keeps each direction of a pair as an independent entry; bounds and
// commission are checked locally before any network call, and the authority
// re-validates everything on its side.
type Service interface {
	Rates() []domain.ExchangeRate
	Rate(from, to domain.Currency) (domain.ExchangeRate, error)
	Quote(from, to domain.Currency, amount float64, verified bool) (domain.Conversion, error)
	Convert(ctx context.Context, playerID string, amount float64, from, to domain.Currency) (*domain.Conversion, error)
	ReplaceRates(ctx context.Context, rates []domain.ExchangeRate)
}

type service struct {
	mu    sync.RWMutex
	rates map[pair]domain.ExchangeRate

	authority Authority
	committer Committer
	recorder  Recorder
}

func NewService(auth Authority, committer Committer, recorder Recorder, rates []domain.ExchangeRate) Service {
	s := &service{
		rates:     make(map[pair]domain.ExchangeRate),
		authority: auth,
		committer: committer,
		recorder:  recorder,
	}
	for _, r := range rates {
		s.rates[pair{r.From, r.To}] = r
	}
	return s
}

// DefaultRates is the built-in table used until the authority supplies one.
func DefaultRates() []domain.ExchangeRate {
	return []domain.ExchangeRate{
		{From: domain.CurrencyCCC, To: domain.CurrencyCS, Rate: 0.005, Commission: 0, MinAmount: 200, MaxAmount: 1_000_000},
		{From: domain.CurrencyCS, To: domain.CurrencyTON, Rate: 0.01, Commission: 2, MinAmount: 10, MaxAmount: 10_000},
		{From: domain.CurrencyTON, To: domain.CurrencyCS, Rate: 95, Commission: 2, MinAmount: 0.1, MaxAmount: 100},
	}
}

func (s *service) Rates() []domain.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ExchangeRate, 0, len(s.rates))
	for _, r := range s.rates {
		out = append(out, r)
	}
	return out
}

func (s *service) Rate(from, to domain.Currency) (domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rates[pair{from, to}]
	if !ok {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s->%s", domain.ErrRateNotFound, from, to)
	}
	return r, nil
}

// Quote applies the rate table to an amount without touching the network.
// Amounts outside the pair's bounds fail with OutOfRangeError; commission
// is charged only to unverified players.
func (s *service) Quote(from, to domain.Currency, amount float64, verified bool) (domain.Conversion, error) {
	r, err := s.Rate(from, to)
	if err != nil {
		return domain.Conversion{}, err
	}
	if amount < r.MinAmount || amount > r.MaxAmount {
		return domain.Conversion{}, &domain.OutOfRangeError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}

	commission := r.Commission
	if verified {
		commission = 0
	}
	result := amount * r.Rate * (1 - commission/100)

	return domain.Conversion{
		From:       from,
		To:         to,
		Amount:     amount,
		Result:     result,
		Commission: commission,
	}, nil
}

// Convert exchanges currency at the authority. Rate existence, bounds and
// balance are checked locally first so obviously invalid requests never
// reach the wire; the confirmed result then replaces the local quote.
func (s *service) Convert(ctx context.Context, playerID string, amount float64, from, to domain.Currency) (*domain.Conversion, error) {
	log := logger.FromContext(ctx)

	snap, err := s.committer.Snapshot(playerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Quote(from, to, amount, snap.Verified); err != nil {
		log.Warn(LogMsgConversionRejected, "playerID", playerID, "from", from, "to", to, "error", err)
		return nil, err
	}
	if snap.Balances[from] < amount {
		log.Warn(LogMsgConversionRejected, "playerID", playerID, "from", from, "reason", "insufficient funds")
		return nil, fmt.Errorf("%w: have %s, need %s",
			domain.ErrInsufficientFunds, FormatAmount(from, snap.Balances[from]), FormatAmount(from, amount))
	}

	res, err := s.authority.Convert(ctx, playerID, amount, from, to)
	if err != nil {
		return nil, err
	}

	if cerr := s.committer.Commit(playerID, func(snap *domain.PlayerSnapshot) {
		snap.Balances = res.Balances
	}); cerr != nil {
		log.Warn(LogMsgConversionConfirmed, "playerID", playerID, "error", cerr)
	}

	log.Info(LogMsgConversionConfirmed,
		"playerID", playerID,
		"spent", FormatAmount(from, res.Conversion.Amount),
		"received", FormatAmount(to, res.Conversion.Result),
		"commission", res.Conversion.Commission)
	metrics.Conversions.WithLabelValues(fmt.Sprintf("%s-%s", from, to)).Inc()
	if s.recorder != nil {
		s.recorder.Record(ctx, playerID, ActionConverted, res.Conversion)
	}

	conv := res.Conversion
	return &conv, nil
}

// ReplaceRates swaps in a new table fetched from the authority. Called by
// the periodic rates refresh job.
func (s *service) ReplaceRates(ctx context.Context, rates []domain.ExchangeRate) {
	next := make(map[pair]domain.ExchangeRate, len(rates))
	for _, r := range rates {
		next[pair{r.From, r.To}] = r
	}

	s.mu.Lock()
	s.rates = next
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRatesReplaced, "pairs", len(rates))
}
