package exchange

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/authority"
	"github.com/cosmoforge/minecore/internal/domain"
)

type fakeAuthority struct {
	mu    sync.Mutex
	res   *authority.ConvertResult
	err   error
	calls int
}

func (f *fakeAuthority) Convert(_ context.Context, _ string, amount float64, from, to domain.Currency) (*authority.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	// Echo a plausible confirmation when the test did not pin one.
	return &authority.ConvertResult{
		Conversion: domain.Conversion{From: from, To: to, Amount: amount},
		Balances:   map[domain.Currency]float64{},
	}, nil
}

type fakeCommitter struct {
	snap *domain.PlayerSnapshot
}

func (f *fakeCommitter) Snapshot(string) (*domain.PlayerSnapshot, error) {
	if f.snap == nil {
		return nil, domain.ErrPlayerNotTracked
	}
	return f.snap.Clone(), nil
}

func (f *fakeCommitter) Commit(_ string, apply func(*domain.PlayerSnapshot)) error {
	apply(f.snap)
	return nil
}

func trackedPlayer(verified bool) *fakeCommitter {
	return &fakeCommitter{snap: &domain.PlayerSnapshot{
		PlayerID: "p1",
		Verified: verified,
		Balances: map[domain.Currency]float64{
			domain.CurrencyCCC: 5000,
			domain.CurrencyCS:  500,
		},
		Zones: map[int]domain.ZoneSnapshot{},
	}}
}

func TestQuoteBaseRate(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(false), nil, DefaultRates())

	conv, err := svc.Quote(domain.CurrencyCCC, domain.CurrencyCS, 1000, false)
	require.NoError(t, err)
	assert.InDelta(t, 5, conv.Result, 1e-9)
	assert.Equal(t, 0.0, conv.Commission)
}

func TestQuoteCommissionOnlyForUnverified(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(false), nil, DefaultRates())

	unverified, err := svc.Quote(domain.CurrencyCS, domain.CurrencyTON, 100, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.98, unverified.Result, 1e-9)
	assert.Equal(t, 2.0, unverified.Commission)

	verified, err := svc.Quote(domain.CurrencyCS, domain.CurrencyTON, 100, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, verified.Result, 1e-9)
	assert.Equal(t, 0.0, verified.Commission)
}

func TestRateDirectionsAreIndependent(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(true), nil, DefaultRates())

	fwd, err := svc.Rate(domain.CurrencyCS, domain.CurrencyTON)
	require.NoError(t, err)
	back, err := svc.Rate(domain.CurrencyTON, domain.CurrencyCS)
	require.NoError(t, err)
	assert.NotEqual(t, 1/fwd.Rate, back.Rate, "reverse direction is its own table entry, not the inverse")
}

func TestQuoteUnknownPair(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(true), nil, DefaultRates())

	_, err := svc.Quote(domain.CurrencyTON, domain.CurrencyCCC, 1, true)
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestQuoteOutOfRange(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(true), nil, DefaultRates())

	_, err := svc.Quote(domain.CurrencyCCC, domain.CurrencyCS, 100, true)
	var oor *domain.OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 100.0, oor.Amount)
	assert.Equal(t, 200.0, oor.Min)
	assert.Equal(t, 1_000_000.0, oor.Max)
}

func TestConvertAppliesConfirmedBalances(t *testing.T) {
	auth := &fakeAuthority{res: &authority.ConvertResult{
		Conversion: domain.Conversion{
			From: domain.CurrencyCCC, To: domain.CurrencyCS,
			Amount: 1000, Result: 5,
		},
		Balances: map[domain.Currency]float64{
			domain.CurrencyCCC: 4000,
			domain.CurrencyCS:  505,
		},
	}}
	committer := trackedPlayer(true)
	svc := NewService(auth, committer, nil, DefaultRates())

	conv, err := svc.Convert(context.Background(), "p1", 1000, domain.CurrencyCCC, domain.CurrencyCS)
	require.NoError(t, err)
	assert.Equal(t, 5.0, conv.Result)
	assert.Equal(t, 4000.0, committer.snap.Balances[domain.CurrencyCCC])
	assert.Equal(t, 505.0, committer.snap.Balances[domain.CurrencyCS])
}

func TestConvertRejectsBeforeNetwork(t *testing.T) {
	auth := &fakeAuthority{}
	committer := trackedPlayer(true)
	svc := NewService(auth, committer, nil, DefaultRates())

	// Out of range
	_, err := svc.Convert(context.Background(), "p1", 100, domain.CurrencyCCC, domain.CurrencyCS)
	var oor *domain.OutOfRangeError
	assert.True(t, errors.As(err, &oor))

	// Unknown pair
	_, err = svc.Convert(context.Background(), "p1", 1, domain.CurrencyTON, domain.CurrencyCCC)
	assert.ErrorIs(t, err, domain.ErrRateNotFound)

	// Insufficient funds
	_, err = svc.Convert(context.Background(), "p1", 600, domain.CurrencyCS, domain.CurrencyTON)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, 0, auth.calls, "local rejections never reach the authority")
}

func TestConvertUntrackedPlayer(t *testing.T) {
	svc := NewService(&fakeAuthority{}, &fakeCommitter{}, nil, DefaultRates())

	_, err := svc.Convert(context.Background(), "p1", 1000, domain.CurrencyCCC, domain.CurrencyCS)
	assert.ErrorIs(t, err, domain.ErrPlayerNotTracked)
}

func TestConvertAuthorityErrorNotRetried(t *testing.T) {
	auth := &fakeAuthority{err: domain.ErrNetwork}
	svc := NewService(auth, trackedPlayer(true), nil, DefaultRates())

	_, err := svc.Convert(context.Background(), "p1", 1000, domain.CurrencyCCC, domain.CurrencyCS)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, 1, auth.calls)
}

func TestReplaceRates(t *testing.T) {
	svc := NewService(&fakeAuthority{}, trackedPlayer(true), nil, DefaultRates())

	svc.ReplaceRates(context.Background(), []domain.ExchangeRate{
		{From: domain.CurrencyCCC, To: domain.CurrencyCS, Rate: 0.01, MinAmount: 1, MaxAmount: 100},
	})

	conv, err := svc.Quote(domain.CurrencyCCC, domain.CurrencyCS, 100, true)
	require.NoError(t, err)
	assert.InDelta(t, 1, conv.Result, 1e-9)

	_, err = svc.Rate(domain.CurrencyCS, domain.CurrencyTON)
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,000.00 CCC", FormatAmount(domain.CurrencyCCC, 1000))
	assert.Equal(t, "0.98 TON", FormatAmount(domain.CurrencyTON, 0.98))
}
