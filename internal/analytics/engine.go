// Package analytics computes derived trading statistics over journal
// trade records. Every function is pure: inputs are never mutated, no
// wall clock is consulted, and all numeric degeneracies resolve to
// defined fallback values instead of NaN or Inf.
package analytics

import (
	"sort"
	"time"

	"github.com/sherintbrody/journal-backend/pkg/types"
	"go.uber.org/zap"
)

// Engine produces analytics reports. It holds no state between
// invocations; concurrent calls are safe.
type Engine struct {
	logger *zap.Logger
	cfg    types.AnalyticsConfig
}

// NewEngine creates an analytics engine.
func NewEngine(logger *zap.Logger, cfg types.AnalyticsConfig) *Engine {
	if cfg.RollingWindowSize <= 0 {
		cfg = types.DefaultAnalyticsConfig()
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Analyze computes the full report for the given trades, window and
// reference time. Only closed trades inside the window enter the
// aggregates; open trades never reach a P&L-bearing view.
func (e *Engine) Analyze(trades []types.TradeRecord, period types.Period, reference time.Time) *types.Report {
	filtered := FilterTrades(trades, period, reference)

	report := &types.Report{
		Period:      period,
		GeneratedAt: reference,
		Core:        CoreMetrics(filtered),
		Monthly:     MonthlyBuckets(filtered),
		Weekday:     WeekdayBuckets(filtered),
		Hourly:      HourlyBuckets(filtered),
		Durations:   DurationScatter(filtered),
		Rolling:     RollingWinRate(filtered, e.cfg.RollingWindowSize, e.cfg.RollingMinTrades),
		RiskReward:  RiskRewardScatter(filtered, e.cfg.MaxPlannedRR),
	}
	report.Streaks = Streaks(filtered)
	report.Drawdown, report.EquityCurve = Drawdown(filtered)

	if e.logger != nil {
		e.logger.Debug("analytics computed",
			zap.String("period", string(period)),
			zap.Int("trades", len(filtered)),
		)
	}
	return report
}

// FilterTrades returns the closed trades whose Timestamp falls inside
// the period window ending at reference. The window boundary is
// inclusive. PeriodAll keeps every closed trade.
func FilterTrades(trades []types.TradeRecord, period types.Period, reference time.Time) []types.TradeRecord {
	days := period.Days()
	var cutoff time.Time
	if days > 0 {
		cutoff = reference.AddDate(0, 0, -days)
	}

	filtered := make([]types.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		if days > 0 && t.Timestamp.Before(cutoff) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// sortedByTimestamp returns a fresh ascending copy keyed on the
// canonical ordering timestamp.
func sortedByTimestamp(trades []types.TradeRecord) []types.TradeRecord {
	out := make([]types.TradeRecord, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
