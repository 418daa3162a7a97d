package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// bucketAccumulator is the shared reduce state for all grouped views.
type bucketAccumulator struct {
	label    string
	when     time.Time
	count    int
	wins     int
	totalPnL decimal.Decimal
}

func (b *bucketAccumulator) add(t types.TradeRecord) {
	b.count++
	if t.Result.IsPositive() {
		b.wins++
	}
	b.totalPnL = b.totalPnL.Add(t.Result)
}

func (b *bucketAccumulator) finish(key string) types.TimeBucket {
	out := types.TimeBucket{
		Key:        key,
		Label:      b.label,
		TradeCount: b.count,
		WinCount:   b.wins,
		TotalPnL:   b.totalPnL,
	}
	if b.count > 0 {
		out.WinRate = float64(b.wins) / float64(b.count) * 100
		out.AvgPnL = b.totalPnL.Div(decimal.NewFromInt(int64(b.count)))
	}
	return out
}

// MonthlyBuckets groups trades by the year-month of their timestamp.
// Buckets are sorted chronologically by the underlying date, not by
// the label string.
func MonthlyBuckets(trades []types.TradeRecord) []types.TimeBucket {
	byMonth := make(map[string]*bucketAccumulator)
	for _, t := range trades {
		key := t.Timestamp.Format("2006-01")
		acc, ok := byMonth[key]
		if !ok {
			first := time.Date(t.Timestamp.Year(), t.Timestamp.Month(), 1, 0, 0, 0, 0, time.UTC)
			acc = &bucketAccumulator{label: t.Timestamp.Format("Jan 2006"), when: first}
			byMonth[key] = acc
		}
		acc.add(t)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return byMonth[keys[i]].when.Before(byMonth[keys[j]].when)
	})

	out := make([]types.TimeBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, byMonth[k].finish(k))
	}
	return out
}

// tradingWeekdays are the five bucket keys of the weekday view, in
// display order. Weekend trades are excluded from the view entirely.
var tradingWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// WeekdayBuckets groups trades by the weekday of their timestamp. All
// five weekdays are always present, zero-filled where no trades
// landed, so consumers can tell "no data" from "zero P&L".
func WeekdayBuckets(trades []types.TradeRecord) []types.TimeBucket {
	byDay := make(map[time.Weekday]*bucketAccumulator, len(tradingWeekdays))
	for _, wd := range tradingWeekdays {
		byDay[wd] = &bucketAccumulator{label: wd.String()}
	}
	for _, t := range trades {
		if acc, ok := byDay[t.Timestamp.Weekday()]; ok {
			acc.add(t)
		}
	}

	out := make([]types.TimeBucket, 0, len(tradingWeekdays))
	for _, wd := range tradingWeekdays {
		out = append(out, byDay[wd].finish(wd.String()))
	}
	return out
}

// HourlyBuckets groups trades by the hour their position was opened.
// All 24 hours are present, zero-filled where absent.
func HourlyBuckets(trades []types.TradeRecord) []types.TimeBucket {
	accs := make([]bucketAccumulator, 24)
	for h := range accs {
		accs[h].label = fmt.Sprintf("%02d:00", h)
	}
	for _, t := range trades {
		accs[t.OpenDate.Hour()].add(t)
	}

	out := make([]types.TimeBucket, 0, 24)
	for h := range accs {
		out = append(out, accs[h].finish(fmt.Sprintf("%02d", h)))
	}
	return out
}

// DurationScatter plots realized profit against holding duration for
// trades that carry a close date. Each point keeps the raw numeric
// duration in a per-trade display unit: minutes under an hour, hours
// under a day, days beyond that. Points are sorted by elapsed time.
func DurationScatter(trades []types.TradeRecord) types.DurationView {
	type row struct {
		elapsed time.Duration
		point   types.DurationPoint
	}

	rows := make([]row, 0, len(trades))
	for _, t := range trades {
		d, ok := t.Duration()
		if !ok {
			continue
		}
		var value float64
		var unit string
		switch {
		case d.Minutes() < 60:
			value, unit = d.Minutes(), "minutes"
		case d.Hours() < 24:
			value, unit = d.Hours(), "hours"
		default:
			value, unit = d.Hours()/24, "days"
		}
		outcome := types.StreakLoss
		if t.Result.IsPositive() {
			outcome = types.StreakWin
		}
		rows = append(rows, row{
			elapsed: d,
			point: types.DurationPoint{
				Duration: value,
				Unit:     unit,
				Profit:   t.Result,
				Outcome:  outcome,
			},
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].elapsed < rows[j].elapsed
	})

	view := types.DurationView{Points: make([]types.DurationPoint, 0, len(rows))}
	for _, r := range rows {
		view.Points = append(view.Points, r.point)
	}
	view.Trend = fitTrendLine(view.Points)
	return view
}

// fitTrendLine computes an ordinary least-squares fit of profit on
// duration. Degenerate input (fewer than two points, or collinear
// durations that make the fit non-finite) yields no trend line.
func fitTrendLine(points []types.DurationPoint) *types.TrendLine {
	n := float64(len(points))
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		y, _ := p.Profit.Float64()
		sumX += p.Duration
		sumY += y
		sumXY += p.Duration * y
		sumXX += p.Duration * p.Duration
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	if math.IsNaN(slope) || math.IsInf(slope, 0) ||
		math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil
	}
	return &types.TrendLine{Slope: slope, Intercept: intercept}
}
