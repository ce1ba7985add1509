package authority

import (
	"context"
	"fmt"

	"github.com/cosmoforge/minecore/internal/domain"
)

type plansRequest struct {
	Zone      int     `json:"zone"`
	Principal float64 `json:"principal"`
}

type plansResponse struct {
	Plans []domain.Plan `json:"plans"`
}

// CalculatePlans asks the authority to quote deposit plans for a principal.
// Plans are always server-computed; the engine never derives percentages.
func (c *Client) CalculatePlans(ctx context.Context, playerID string, zone int, principal float64) ([]domain.Plan, error) {
	var resp plansResponse
	err := c.doMutation(ctx, fmt.Sprintf(PathCalculatePlans, playerID), plansRequest{Zone: zone, Principal: principal}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

type createDepositRequest struct {
	Zone      int         `json:"zone"`
	Principal float64     `json:"principal"`
	Plan      domain.Plan `json:"plan"`
}

// CreateDeposit locks a principal into a quoted plan.
func (c *Client) CreateDeposit(ctx context.Context, playerID string, zone int, principal float64, plan domain.Plan) (*domain.Deposit, error) {
	var dep domain.Deposit
	err := c.doMutation(ctx, fmt.Sprintf(PathCreateDeposit, playerID), createDepositRequest{
		Zone:      zone,
		Principal: principal,
		Plan:      plan,
	}, &dep)
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// WithdrawResult is the authority's response to a withdrawal: the deposit
// in its final state plus the player's updated balances.
type WithdrawResult struct {
	Deposit  domain.Deposit              `json:"deposit"`
	Balances map[domain.Currency]float64 `json:"balances"`
}

// WithdrawDeposit transfers a matured deposit's return amount to the
// player's balance and marks the deposit withdrawn, atomically at the
// authority. Only valid when the authoritative state is ready.
func (c *Client) WithdrawDeposit(ctx context.Context, playerID, depositID string) (*WithdrawResult, error) {
	var res WithdrawResult
	err := c.doMutation(ctx, fmt.Sprintf(PathWithdraw, playerID, depositID), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CancelResult is the authority's response to an early cancellation.
type CancelResult struct {
	Deposit        domain.Deposit              `json:"deposit"`
	ReturnedAmount float64                     `json:"returned_amount"`
	PenaltyAmount  float64                     `json:"penalty_amount"`
	Balances       map[domain.Currency]float64 `json:"balances"`
}

// CancelDeposit breaks an active deposit before maturity. The authority
// returns the principal minus the penalty and records the penalty amount.
func (c *Client) CancelDeposit(ctx context.Context, playerID, depositID string) (*CancelResult, error) {
	var res CancelResult
	err := c.doMutation(ctx, fmt.Sprintf(PathCancel, playerID, depositID), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
