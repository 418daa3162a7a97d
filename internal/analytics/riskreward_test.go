package analytics_test

import (
	"testing"

	"github.com/sherintbrody/journal-backend/internal/analytics"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func plannedTrade(result, entry, stop, target float64) types.TradeRecord {
	tr := closedTrade(result, 0)
	tr.EntryPrice = decimal.NewFromFloat(entry)
	tr.StopLoss = decimal.NewFromFloat(stop)
	tr.TakeProfit = decimal.NewFromFloat(target)
	return tr
}

func TestRiskRewardScatter(t *testing.T) {
	// Risk 50 pips, reward 100 pips: planned RR of 2.
	trades := []types.TradeRecord{plannedTrade(75, 1.1000, 1.0950, 1.1100)}

	points := analytics.RiskRewardScatter(trades, 10)
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	p := points[0]
	if p.PlannedRR < 1.99 || p.PlannedRR > 2.01 {
		t.Errorf("planned RR: got %v, want 2", p.PlannedRR)
	}
	if p.Outcome != types.OutcomeWin {
		t.Errorf("outcome: got %s, want Win", p.Outcome)
	}
	if !p.Result.Equal(decimal.NewFromInt(75)) {
		t.Errorf("result: got %s, want 75", p.Result)
	}
}

func TestRiskRewardZeroRiskExcluded(t *testing.T) {
	// Entry equals stop loss: zero risk, excluded, no division.
	trades := []types.TradeRecord{plannedTrade(10, 1.1000, 1.1000, 1.1100)}
	if points := analytics.RiskRewardScatter(trades, 10); len(points) != 0 {
		t.Errorf("zero-risk trade not excluded: %d points", len(points))
	}
}

func TestRiskRewardMissingLevelsExcluded(t *testing.T) {
	noStop := closedTrade(10, 0)
	noStop.TakeProfit = decimal.NewFromFloat(1.12)

	noTarget := closedTrade(10, 1)
	noTarget.StopLoss = decimal.NewFromFloat(1.09)

	if points := analytics.RiskRewardScatter([]types.TradeRecord{noStop, noTarget}, 10); len(points) != 0 {
		t.Errorf("trades without both levels not excluded: %d points", len(points))
	}
}

func TestRiskRewardOutlierFiltered(t *testing.T) {
	// 1 pip of risk against 200 pips of reward: RR far above the cap.
	trades := []types.TradeRecord{plannedTrade(10, 1.1000, 1.0999, 1.1200)}
	if points := analytics.RiskRewardScatter(trades, 10); len(points) != 0 {
		t.Errorf("outlier ratio not filtered: %d points", len(points))
	}
}

func TestInstrumentPointValue(t *testing.T) {
	cases := []struct {
		instrument string
		want       int64
	}{
		{"EUR/USD", 10000},
		{"GBPUSD", 10000},
		{"USD/JPY", 100},
		{"XAUUSD", 100},
		{"NAS100", 1},
		{"US30", 1},
		{"BTCUSD", 1},
	}
	for _, c := range cases {
		got := analytics.InstrumentPointValue(c.instrument)
		if !got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s: got %s, want %d", c.instrument, got, c.want)
		}
	}
}
