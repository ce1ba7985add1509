package domain

// ExchangeRate is one direction of a currency pair. Directions are
// independent table entries: the (A,B) and (B,A) rates are not required to
// be mathematical inverses, and the asymmetry must be preserved.
type ExchangeRate struct {
	From       Currency `json:"from"`
	To         Currency `json:"to"`
	Rate       float64  `json:"rate"`       // multiplicative, applied to the source amount
	Commission float64  `json:"commission"` // percent, charged only to unverified players
	MinAmount  float64  `json:"min_amount"` // bounds on the source amount
	MaxAmount  float64  `json:"max_amount"`
}

// Conversion is the result of applying a rate to a source amount.
type Conversion struct {
	From       Currency `json:"from"`
	To         Currency `json:"to"`
	Amount     float64  `json:"amount"`
	Result     float64  `json:"result"`
	Commission float64  `json:"commission"` // percent actually charged
}
