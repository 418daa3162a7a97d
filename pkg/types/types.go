// Package types provides shared type definitions for the journal backend.
package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TradeType represents the direction of a trade.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Period selects the analytics time window, measured back from a
// reference time and compared against TradeRecord.Timestamp.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// ParsePeriod validates a period string. An empty string means "all".
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodQuarter:
		return Period(s), nil
	case "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Days returns the lookback window in days, or 0 for PeriodAll.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodQuarter:
		return 90
	default:
		return 0
	}
}

// StreakType labels the sign of a run of trade results.
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakNone StreakType = "none"
)

// Outcome is the categorical win/loss label attached to scatter rows.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
)

// TradeRecord is a single journal entry. Money and price fields use
// decimal arithmetic; ExitPrice and the stop/target levels are zero
// when unset. Records are immutable from the analytics engine's
// perspective.
type TradeRecord struct {
	ID         string          `json:"id"`
	Instrument string          `json:"instrument"`
	LotSize    decimal.Decimal `json:"lotSize"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	StopLoss   decimal.Decimal `json:"stopLoss,omitempty"`
	TakeProfit decimal.Decimal `json:"takeProfit,omitempty"`
	ExitPrice  decimal.Decimal `json:"exitPrice,omitempty"`
	Result     decimal.Decimal `json:"result"`
	Type       TradeType       `json:"type"`
	Status     TradeStatus     `json:"status"`
	OpenDate   time.Time       `json:"openDate"`
	CloseDate  *time.Time      `json:"closeDate,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Emotion    string          `json:"emotion,omitempty"`
}

// Validation errors returned by TradeRecord.Validate.
var (
	ErrMissingInstrument = errors.New("trade has no instrument")
	ErrInvalidLotSize    = errors.New("lot size must be positive")
	ErrMissingTimestamp  = errors.New("trade has no timestamp")
	ErrMissingOpenDate   = errors.New("trade has no open date")
	ErrOpenWithResult    = errors.New("open trade carries a realized result")
)

// Validate checks a record at the ingestion boundary so malformed
// trades never reach the analytics functions.
func (t *TradeRecord) Validate() error {
	if t.Instrument == "" {
		return ErrMissingInstrument
	}
	if !t.LotSize.IsPositive() {
		return ErrInvalidLotSize
	}
	if t.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	if t.OpenDate.IsZero() {
		return ErrMissingOpenDate
	}
	switch t.Type {
	case TradeTypeBuy, TradeTypeSell:
	default:
		return fmt.Errorf("unknown trade type %q", t.Type)
	}
	switch t.Status {
	case TradeStatusOpen:
		if !t.Result.IsZero() {
			return ErrOpenWithResult
		}
	case TradeStatusClosed:
	default:
		return fmt.Errorf("unknown trade status %q", t.Status)
	}
	return nil
}

// IsClosed reports whether the trade has a booked result.
func (t *TradeRecord) IsClosed() bool {
	return t.Status == TradeStatusClosed
}

// Duration returns the open-to-close duration and whether the close
// date is present.
func (t *TradeRecord) Duration() (time.Duration, bool) {
	if t.CloseDate == nil || t.CloseDate.IsZero() {
		return 0, false
	}
	return t.CloseDate.Sub(t.OpenDate), true
}

// CoreMetrics holds the aggregate statistics over a filtered set of
// closed trades. Ratios are float64 percentages; money stays decimal.
type CoreMetrics struct {
	TotalTrades   int             `json:"totalTrades"`
	WinningTrades int             `json:"winningTrades"`
	LosingTrades  int             `json:"losingTrades"`
	TotalPnL      decimal.Decimal `json:"totalPnl"`
	WinRate       float64         `json:"winRate"`
	AvgWin        decimal.Decimal `json:"avgWin"`
	AvgLoss       decimal.Decimal `json:"avgLoss"`
	LargestWin    decimal.Decimal `json:"largestWin"`
	LargestLoss   decimal.Decimal `json:"largestLoss"`
	ProfitFactor  float64         `json:"profitFactor"`
	Expectancy    decimal.Decimal `json:"expectancy"`
	AvgRR         float64         `json:"avgRR"`
	KellyPercent  float64         `json:"kellyPercent"`
}

// StreakStats describes consecutive win/loss runs.
type StreakStats struct {
	CurrentType          StreakType `json:"currentType"`
	CurrentCount         int        `json:"currentCount"`
	MaxConsecutiveWins   int        `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int        `json:"maxConsecutiveLosses"`
}

// DrawdownStats describes the peak-to-trough equity decline.
type DrawdownStats struct {
	MaxDrawdown        decimal.Decimal `json:"maxDrawdown"`
	MaxDrawdownPercent float64         `json:"maxDrawdownPercent"`
	AvgDurationHours   float64         `json:"avgDurationHours"`
}

// EquityPoint is one point of the cumulative equity curve, one per
// closed trade in chronological order.
type EquityPoint struct {
	SequenceIndex    int             `json:"sequenceIndex"`
	CumulativeEquity decimal.Decimal `json:"cumulativeEquity"`
	DrawdownFromPeak decimal.Decimal `json:"drawdownFromPeak"`
}

// TimeBucket is one grouped row of a time-bucketed view.
type TimeBucket struct {
	Key        string          `json:"key"`
	Label      string          `json:"label"`
	TradeCount int             `json:"tradeCount"`
	WinCount   int             `json:"winCount"`
	TotalPnL   decimal.Decimal `json:"totalPnl"`
	WinRate    float64         `json:"winRate"`
	AvgPnL     decimal.Decimal `json:"avgPnl"`
}

// DurationPoint is one trade plotted by holding duration. Duration is
// the raw numeric value in Unit so consumers can plot it directly.
type DurationPoint struct {
	Duration float64         `json:"duration"`
	Unit     string          `json:"unit"`
	Profit   decimal.Decimal `json:"profit"`
	Outcome  StreakType      `json:"outcome"`
}

// TrendLine is an ordinary least-squares fit of profit on duration.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// DurationView is the duration scatter plus its optional trend line.
type DurationView struct {
	Points []DurationPoint `json:"points"`
	Trend  *TrendLine      `json:"trend,omitempty"`
}

// RollingPoint is one sliding-window win-rate sample.
type RollingPoint struct {
	TradeIndex     int     `json:"tradeIndex"`
	RollingWinRate float64 `json:"rollingWinRate"`
}

// RiskRewardPoint pairs a planned risk:reward ratio with the realized
// outcome of the same trade.
type RiskRewardPoint struct {
	Instrument string          `json:"instrument"`
	PlannedRR  float64         `json:"plannedRR"`
	Result     decimal.Decimal `json:"result"`
	Outcome    Outcome         `json:"outcome"`
}

// Report is the full analytics bundle for one invocation. It is plain
// data: serializable, with no references back to the input trades.
type Report struct {
	Period      Period            `json:"period"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Core        CoreMetrics       `json:"core"`
	Streaks     StreakStats       `json:"streaks"`
	Drawdown    DrawdownStats     `json:"drawdown"`
	EquityCurve []EquityPoint     `json:"equityCurve"`
	Monthly     []TimeBucket      `json:"monthly"`
	Weekday     []TimeBucket      `json:"weekday"`
	Hourly      []TimeBucket      `json:"hourly"`
	Durations   DurationView      `json:"durations"`
	Rolling     []RollingPoint    `json:"rolling"`
	RiskReward  []RiskRewardPoint `json:"riskReward"`
}
