package engine

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

const tradingDaysPerYear = 252

// Analyze computes the statistics from the balance report and the closed and open positions.
func Analyze(startingBalance float64, snapshots []types.BalanceSnapshot, positions []types.Position, commissions float64) types.PerformanceStats {
	result := types.PerformanceStats{
		StartingBalance:  startingBalance,
		FinalBalance:     startingBalance,
		LowestBalance:    startingBalance,
		TotalCommissions: commissions,
		Positions:        len(positions),
	}

	if len(snapshots) > 0 {
		result.FinalBalance = snapshots[len(snapshots)-1].Total

		totals := make([]float64, 0, len(snapshots)+1)
		totals = append(totals, startingBalance)

		for _, snapshot := range snapshots {
			totals = append(totals, snapshot.Total)
		}

		if lowest, err := stats.Min(totals); err == nil {
			result.LowestBalance = lowest
		}
	}

	result.PnL = result.FinalBalance - startingBalance
	if startingBalance != 0 {
		result.PnLPercent = result.PnL / startingBalance * 100
	}

	result.Sharpe252 = SharpeRatio(DailyReturns(startingBalance, snapshots))

	for _, position := range positions {
		net := position.RealizedPnL - position.Commissions

		switch {
		case net > 0:
			result.Winners++
		case net < 0:
			result.Losers++
		}
	}

	if len(positions) > 0 {
		result.WinRate = float64(result.Winners) / float64(len(positions))
	}

	return result
}

// DailyReturns uses the last balance of every UTC day, the first day is measured against the starting balance.
func DailyReturns(startingBalance float64, snapshots []types.BalanceSnapshot) []float64 {
	var (
		closes  []float64
		lastDay time.Time
	)

	for _, snapshot := range snapshots {
		day := snapshot.Time.UTC().Truncate(24 * time.Hour)
		if len(closes) > 0 && day.Equal(lastDay) {
			closes[len(closes)-1] = snapshot.Total

			continue
		}

		closes = append(closes, snapshot.Total)
		lastDay = day
	}

	returns := make([]float64, 0, len(closes))
	previous := startingBalance

	for _, value := range closes {
		if previous != 0 {
			returns = append(returns, value/previous-1)
		}

		previous = value
	}

	return returns
}

// SharpeRatio annualizes mean over sample standard deviation with 252 trading days.
func SharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0
	}

	std, err := stats.StandardDeviationSample(returns)
	if err != nil || std == 0 || math.IsNaN(std) {
		return 0
	}

	return mean / std * math.Sqrt(tradingDaysPerYear)
}
