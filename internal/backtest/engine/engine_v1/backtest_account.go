package engine

import (
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/trading"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/shopspring/decimal"
)

// BacktestAccount is the single venue account of a run.
type BacktestAccount struct {
	venue           types.Venue
	accountType     types.AccountType
	currency        string
	startingBalance decimal.Decimal
	realizedPnL     decimal.Decimal
	commissions     decimal.Decimal
	snapshots       []types.BalanceSnapshot
	open            bool
}

var _ trading.Portfolio = (*BacktestAccount)(nil)

func NewBacktestAccount() *BacktestAccount {
	return &BacktestAccount{}
}

// Open (re)creates the account for the venue.
func (a *BacktestAccount) Open(venue types.Venue, accountType types.AccountType, currency string, startingBalance float64) {
	a.venue = venue
	a.accountType = accountType
	a.currency = currency
	a.startingBalance = decimal.NewFromFloat(startingBalance)
	a.realizedPnL = decimal.Zero
	a.commissions = decimal.Zero
	a.snapshots = nil
	a.open = true
}

// Reset removes the account.
func (a *BacktestAccount) Reset() {
	*a = BacktestAccount{}
}

// ApplyFill books realized pnl and commission.
func (a *BacktestAccount) ApplyFill(realizedPnL float64, commission float64) {
	a.realizedPnL = a.realizedPnL.Add(decimal.NewFromFloat(realizedPnL))
	a.commissions = a.commissions.Add(decimal.NewFromFloat(commission))
}

// Total is starting balance plus realized pnl minus commissions.
func (a *BacktestAccount) Total() float64 {
	total, _ := a.startingBalance.Add(a.realizedPnL).Sub(a.commissions).Float64()

	return total
}

func (a *BacktestAccount) StartingBalance() float64 {
	value, _ := a.startingBalance.Float64()

	return value
}

func (a *BacktestAccount) Commissions() float64 {
	value, _ := a.commissions.Float64()

	return value
}

func (a *BacktestAccount) RealizedPnL() float64 {
	value, _ := a.realizedPnL.Float64()

	return value
}

func (a *BacktestAccount) Currency() string {
	return a.currency
}

// BalanceTotal implements trading.Portfolio.
func (a *BacktestAccount) BalanceTotal(venue types.Venue) (float64, bool) {
	if !a.open || venue != a.venue {
		return 0, false
	}

	return a.Total(), true
}

// Snapshot appends the current total to the account report.
func (a *BacktestAccount) Snapshot(at time.Time) {
	a.snapshots = append(a.snapshots, types.BalanceSnapshot{
		Time:     at,
		Total:    a.Total(),
		Currency: a.currency,
	})
}

// Snapshots returns the account report.
func (a *BacktestAccount) Snapshots() []types.BalanceSnapshot {
	return a.snapshots
}
