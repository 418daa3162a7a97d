package analytics

import "github.com/sherintbrody/journal-backend/pkg/types"

// RollingWinRate computes the win rate over a sliding window of the
// most recent trades, walked in timestamp order. The window shrinks
// to the trade count when fewer than windowSize trades exist; below
// minTrades the series is empty, since tiny windows produce rates too
// noisy to read.
func RollingWinRate(trades []types.TradeRecord, windowSize, minTrades int) []types.RollingPoint {
	n := len(trades)
	window := windowSize
	if n < window {
		window = n
	}
	if window < minTrades {
		return nil
	}

	ordered := sortedByTimestamp(trades)

	wins := make([]int, n+1) // prefix sums of win counts
	for i, t := range ordered {
		wins[i+1] = wins[i]
		if t.Result.IsPositive() {
			wins[i+1]++
		}
	}

	out := make([]types.RollingPoint, 0, n-window+1)
	for i := window - 1; i < n; i++ {
		winCount := wins[i+1] - wins[i+1-window]
		out = append(out, types.RollingPoint{
			TradeIndex:     i,
			RollingWinRate: float64(winCount) / float64(window) * 100,
		})
	}
	return out
}
