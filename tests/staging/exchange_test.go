//go:build staging

package staging

import (
	"net/http"
	"testing"
)

func TestExchangeRates(t *testing.T) {
	var rates []struct {
		From string  `json:"from"`
		To   string  `json:"to"`
		Rate float64 `json:"rate"`
	}
	if status := getData(t, "/api/v1/exchange/rates", &rates); status != http.StatusOK {
		t.Fatalf("rates: expected 200, got %d", status)
	}

	if len(rates) == 0 {
		t.Error("expected at least one exchange rate")
	}
	for _, r := range rates {
		if r.Rate <= 0 {
			t.Errorf("rate %s->%s is not positive: %f", r.From, r.To, r.Rate)
		}
	}
}
