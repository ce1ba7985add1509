package exchange

import (
	"context"

	"github.com/cosmoforge/minecore/internal/domain"
)

// RatesSource supplies the authoritative rate table.
type RatesSource interface {
	GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RefreshJob replaces the rate table from the authority on a schedule.
type RefreshJob struct {
	service Service
	source  RatesSource
}

// NewRefreshJob creates a new rates refresh job
func NewRefreshJob(service Service, source RatesSource) *RefreshJob {
	return &RefreshJob{service: service, source: source}
}

// Process fetches the current table and swaps it in. A fetch failure keeps
// the previous table in place.
func (j *RefreshJob) Process(ctx context.Context) error {
	rates, err := j.source.GetExchangeRates(ctx)
	if err != nil {
		return err
	}
	if len(rates) > 0 {
		j.service.ReplaceRates(ctx, rates)
	}
	return nil
}
