package analytics

import (
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Streaks walks the trades in timestamp order and reports the longest
// consecutive win and loss runs plus the streak still running at the
// most recent trade. A zero-result trade breaks any streak.
func Streaks(trades []types.TradeRecord) types.StreakStats {
	stats := types.StreakStats{CurrentType: types.StreakNone}
	if len(trades) == 0 {
		return stats
	}

	ordered := sortedByTimestamp(trades)

	var wins, losses int
	for _, t := range ordered {
		switch {
		case t.Result.IsPositive():
			wins++
			losses = 0
		case t.Result.IsNegative():
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		if wins > stats.MaxConsecutiveWins {
			stats.MaxConsecutiveWins = wins
		}
		if losses > stats.MaxConsecutiveLosses {
			stats.MaxConsecutiveLosses = losses
		}
	}

	// Current streak: sign of the most recent result, counted
	// backwards until the sign changes. A zero result ends it.
	last := ordered[len(ordered)-1].Result
	switch {
	case last.IsPositive():
		stats.CurrentType = types.StreakWin
	case last.IsNegative():
		stats.CurrentType = types.StreakLoss
	default:
		return stats
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		r := ordered[i].Result
		if stats.CurrentType == types.StreakWin && !r.IsPositive() {
			break
		}
		if stats.CurrentType == types.StreakLoss && !r.IsNegative() {
			break
		}
		stats.CurrentCount++
	}
	return stats
}

// Drawdown builds the cumulative equity curve in timestamp order and
// measures the deepest peak-to-trough decline, absolute and as a
// percentage of the peak. The peak starts at zero, so a curve that
// never goes positive reports a zero percentage.
func Drawdown(trades []types.TradeRecord) (types.DrawdownStats, []types.EquityPoint) {
	stats := types.DrawdownStats{}
	if len(trades) == 0 {
		return stats, nil
	}

	ordered := sortedByTimestamp(trades)
	curve := make([]types.EquityPoint, 0, len(ordered))

	var running, peak decimal.Decimal
	var totalHours float64
	var durationCount int

	for i, t := range ordered {
		running = running.Add(t.Result)
		if running.GreaterThan(peak) {
			peak = running
		}
		dd := peak.Sub(running)
		if dd.GreaterThan(stats.MaxDrawdown) {
			stats.MaxDrawdown = dd
		}
		if peak.IsPositive() {
			pct, _ := dd.Div(peak).Float64()
			if pct*100 > stats.MaxDrawdownPercent {
				stats.MaxDrawdownPercent = pct * 100
			}
		}
		curve = append(curve, types.EquityPoint{
			SequenceIndex:    i,
			CumulativeEquity: running,
			DrawdownFromPeak: dd,
		})

		if d, ok := t.Duration(); ok {
			totalHours += d.Hours()
			durationCount++
		}
	}

	if durationCount > 0 {
		stats.AvgDurationHours = totalHours / float64(durationCount)
	}
	return stats, curve
}
