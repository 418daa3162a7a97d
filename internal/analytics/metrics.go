package analytics

import (
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// profitFactorCap stands in for an infinite profit factor when a
// trade set has gross profit but no gross loss.
const profitFactorCap = 999

// CoreMetrics calculates the aggregate statistics for a set of closed
// trades. Every field is zero/neutral when the set is empty. Trades
// with a zero result count toward the total but toward neither the
// win nor the loss bucket.
func CoreMetrics(trades []types.TradeRecord) types.CoreMetrics {
	m := types.CoreMetrics{}
	if len(trades) == 0 {
		return m
	}

	var totalWins, totalLosses decimal.Decimal
	for _, t := range trades {
		m.TotalPnL = m.TotalPnL.Add(t.Result)
		switch {
		case t.Result.IsPositive():
			m.WinningTrades++
			totalWins = totalWins.Add(t.Result)
			if t.Result.GreaterThan(m.LargestWin) {
				m.LargestWin = t.Result
			}
		case t.Result.IsNegative():
			m.LosingTrades++
			totalLosses = totalLosses.Add(t.Result.Abs())
			if t.Result.LessThan(m.LargestLoss) {
				m.LargestLoss = t.Result
			}
		}
	}

	m.TotalTrades = len(trades)
	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100

	if m.WinningTrades > 0 {
		m.AvgWin = totalWins.Div(decimal.NewFromInt(int64(m.WinningTrades)))
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = totalLosses.Div(decimal.NewFromInt(int64(m.LosingTrades)))
	}

	// Gross profit over gross loss, capped instead of infinite.
	switch {
	case totalLosses.IsPositive():
		m.ProfitFactor, _ = totalWins.Div(totalLosses).Float64()
	case totalWins.IsPositive():
		m.ProfitFactor = profitFactorCap
	}

	// Expectancy: (Win% * AvgWin) - (Loss% * AvgLoss)
	winPct := decimal.NewFromFloat(m.WinRate / 100)
	lossPct := decimal.NewFromInt(1).Sub(winPct)
	m.Expectancy = winPct.Mul(m.AvgWin).Sub(lossPct.Mul(m.AvgLoss))

	if m.AvgLoss.IsPositive() {
		m.AvgRR, _ = m.AvgWin.Div(m.AvgLoss).Float64()
	}

	// Raw Kelly fraction as a percentage. May be negative when the
	// system has no edge; clamping to [0,100] is left to callers.
	if m.WinRate > 0 && m.AvgLoss.IsPositive() {
		p := m.WinRate / 100
		q := 1 - p
		m.KellyPercent = (p - q/m.AvgRR) * 100
	}

	return m
}
