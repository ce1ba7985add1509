package authority

import (
	"context"
	"fmt"

	"github.com/cosmoforge/minecore/internal/domain"
)

type convertRequest struct {
	Amount float64         `json:"amount"`
	From   domain.Currency `json:"from"`
	To     domain.Currency `json:"to"`
}

// ConvertResult is the authority's response to a conversion: the applied
// conversion plus updated balances. The authority re-validates bounds and
// commission independently of the engine's precomputation.
type ConvertResult struct {
	Conversion domain.Conversion           `json:"conversion"`
	Balances   map[domain.Currency]float64 `json:"balances"`
}

// Convert exchanges one currency for another at the authority.
func (c *Client) Convert(ctx context.Context, playerID string, amount float64, from, to domain.Currency) (*ConvertResult, error) {
	var res ConvertResult
	err := c.doMutation(ctx, fmt.Sprintf(PathConvert, playerID), convertRequest{
		Amount: amount,
		From:   from,
		To:     to,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ratesResponse struct {
	Rates []domain.ExchangeRate `json:"rates"`
}

// GetExchangeRates fetches the current rate table.
func (c *Client) GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	var res ratesResponse
	if err := c.doRead(ctx, PathRates, &res); err != nil {
		return nil, err
	}
	return res.Rates, nil
}
