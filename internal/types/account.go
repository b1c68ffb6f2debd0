package types

import "time"

type OmsType string

type AccountType string

const (
	OmsTypeNetting OmsType = "NETTING"
)

const (
	AccountTypeMargin AccountType = "MARGIN"
	AccountTypeCash   AccountType = "CASH"
)

// BalanceSnapshot is one row of the account report.
type BalanceSnapshot struct {
	Time time.Time `yaml:"time" json:"time" csv:"time"`
	// Total is starting balance plus realized PnL minus commissions.
	Total    float64 `yaml:"total" json:"total" csv:"total"`
	Currency string  `yaml:"currency" json:"currency" csv:"currency"`
}
