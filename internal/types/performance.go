package types

// PerformanceStats summarizes one backtest run.
type PerformanceStats struct {
	StartingBalance  float64 `yaml:"starting_balance" json:"starting_balance"`
	FinalBalance     float64 `yaml:"final_balance" json:"final_balance"`
	PnL              float64 `yaml:"pnl" json:"pnl"`
	PnLPercent       float64 `yaml:"pnl_pct" json:"pnl_pct"`
	Sharpe252        float64 `yaml:"sharpe_252" json:"sharpe_252"`
	LowestBalance    float64 `yaml:"lowest_balance" json:"lowest_balance"`
	TotalCommissions float64 `yaml:"total_commissions" json:"total_commissions"`
	Positions        int     `yaml:"positions" json:"positions"`
	Winners          int     `yaml:"winners" json:"winners"`
	Losers           int     `yaml:"losers" json:"losers"`
	WinRate          float64 `yaml:"win_rate" json:"win_rate"`
}
