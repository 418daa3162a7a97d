package analytics_test

import (
	"testing"
	"time"

	"github.com/sherintbrody/journal-backend/internal/analytics"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func TestWeekdayBucketsZeroFill(t *testing.T) {
	// Trades only on Monday and Wednesday; testBase is a Monday.
	trades := []types.TradeRecord{
		closedTrade(10, 0),  // Monday
		closedTrade(-5, 48), // Wednesday
	}

	buckets := analytics.WeekdayBuckets(trades)
	if len(buckets) != 5 {
		t.Fatalf("weekday buckets: got %d, want 5", len(buckets))
	}

	want := map[string]int{
		"Monday": 1, "Tuesday": 0, "Wednesday": 1, "Thursday": 0, "Friday": 0,
	}
	for i, wd := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		b := buckets[i]
		if b.Label != wd {
			t.Errorf("bucket %d label: got %s, want %s", i, b.Label, wd)
		}
		if b.TradeCount != want[wd] {
			t.Errorf("%s trade count: got %d, want %d", wd, b.TradeCount, want[wd])
		}
	}
}

func TestWeekdayBucketsExcludeWeekend(t *testing.T) {
	trades := []types.TradeRecord{
		closedTrade(10, 0),       // Monday
		closedTrade(99, 5*24),    // Saturday
		closedTrade(-99, 6*24+2), // Sunday
	}

	buckets := analytics.WeekdayBuckets(trades)
	var total int
	for _, b := range buckets {
		total += b.TradeCount
	}
	if total != 1 {
		t.Errorf("weekend trades leaked into weekday view: total %d, want 1", total)
	}
}

func TestMonthlyBucketsChronological(t *testing.T) {
	jan := closedTrade(10, 0)
	jan.Timestamp = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	dec := closedTrade(-5, 1)
	dec.Timestamp = time.Date(2023, time.December, 20, 10, 0, 0, 0, time.UTC)
	mar := closedTrade(20, 2)
	mar.Timestamp = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	buckets := analytics.MonthlyBuckets([]types.TradeRecord{jan, dec, mar})
	if len(buckets) != 3 {
		t.Fatalf("monthly buckets: got %d, want 3", len(buckets))
	}

	// "Dec 2023" sorts after "Jan 2024" alphabetically; order must
	// follow the underlying dates instead.
	wantLabels := []string{"Dec 2023", "Jan 2024", "Mar 2024"}
	for i, want := range wantLabels {
		if buckets[i].Label != want {
			t.Errorf("bucket %d: got %s, want %s", i, buckets[i].Label, want)
		}
	}
	if buckets[0].Key != "2023-12" {
		t.Errorf("bucket key: got %s, want 2023-12", buckets[0].Key)
	}
}

func TestMonthlyBucketAggregates(t *testing.T) {
	trades := closedTrades(10, -5, 15) // same month, hours apart
	buckets := analytics.MonthlyBuckets(trades)
	if len(buckets) != 1 {
		t.Fatalf("monthly buckets: got %d, want 1", len(buckets))
	}

	b := buckets[0]
	if b.TradeCount != 3 || b.WinCount != 2 {
		t.Errorf("counts: got %d/%d, want 3/2", b.TradeCount, b.WinCount)
	}
	if !b.TotalPnL.Equal(decimal.NewFromInt(20)) {
		t.Errorf("total pnl: got %s, want 20", b.TotalPnL)
	}
	if b.WinRate < 66.6 || b.WinRate > 66.7 {
		t.Errorf("win rate: got %v, want ~66.67", b.WinRate)
	}
	wantAvg := decimal.NewFromInt(20).Div(decimal.NewFromInt(3))
	if !b.AvgPnL.Equal(wantAvg) {
		t.Errorf("avg pnl: got %s, want %s", b.AvgPnL, wantAvg)
	}
}

func TestHourlyBucketsZeroFill(t *testing.T) {
	trades := []types.TradeRecord{closedTrade(10, 0)} // opened 09:00

	buckets := analytics.HourlyBuckets(trades)
	if len(buckets) != 24 {
		t.Fatalf("hourly buckets: got %d, want 24", len(buckets))
	}
	if buckets[9].TradeCount != 1 {
		t.Errorf("hour 09 count: got %d, want 1", buckets[9].TradeCount)
	}
	if buckets[9].Label != "09:00" {
		t.Errorf("hour 09 label: got %s", buckets[9].Label)
	}
	for h, b := range buckets {
		if h != 9 && b.TradeCount != 0 {
			t.Errorf("hour %02d should be empty, got %d", h, b.TradeCount)
		}
	}
}

func withDuration(trade types.TradeRecord, d time.Duration) types.TradeRecord {
	closeAt := trade.OpenDate.Add(d)
	trade.CloseDate = &closeAt
	return trade
}

func TestDurationScatterUnits(t *testing.T) {
	trades := []types.TradeRecord{
		withDuration(closedTrade(10, 0), 30*time.Minute),
		withDuration(closedTrade(-5, 1), 5*time.Hour),
		withDuration(closedTrade(20, 2), 49*time.Hour),
		closedTrade(99, 3), // no close date, excluded
	}

	view := analytics.DurationScatter(trades)
	if len(view.Points) != 3 {
		t.Fatalf("duration points: got %d, want 3", len(view.Points))
	}

	p := view.Points
	if p[0].Unit != "minutes" || p[0].Duration != 30 {
		t.Errorf("point 0: got %v %s", p[0].Duration, p[0].Unit)
	}
	if p[1].Unit != "hours" || p[1].Duration != 5 {
		t.Errorf("point 1: got %v %s", p[1].Duration, p[1].Unit)
	}
	if p[2].Unit != "days" || p[2].Duration < 2.04 || p[2].Duration > 2.05 {
		t.Errorf("point 2: got %v %s", p[2].Duration, p[2].Unit)
	}
	if p[0].Outcome != types.StreakWin || p[1].Outcome != types.StreakLoss {
		t.Errorf("outcomes: got %s/%s", p[0].Outcome, p[1].Outcome)
	}
}

func TestDurationScatterTrend(t *testing.T) {
	// Profit exactly linear in duration: y = 2x + 1 over minutes.
	trades := []types.TradeRecord{}
	for i, mins := range []int{10, 20, 30} {
		tr := closedTrade(float64(2*mins+1), i)
		trades = append(trades, withDuration(tr, time.Duration(mins)*time.Minute))
	}

	view := analytics.DurationScatter(trades)
	if view.Trend == nil {
		t.Fatal("expected trend line")
	}
	if view.Trend.Slope < 1.99 || view.Trend.Slope > 2.01 {
		t.Errorf("slope: got %v, want 2", view.Trend.Slope)
	}
	if view.Trend.Intercept < 0.99 || view.Trend.Intercept > 1.01 {
		t.Errorf("intercept: got %v, want 1", view.Trend.Intercept)
	}
}

func TestDurationScatterDegenerateTrend(t *testing.T) {
	// Single point: no fit.
	one := []types.TradeRecord{withDuration(closedTrade(10, 0), time.Hour)}
	if view := analytics.DurationScatter(one); view.Trend != nil {
		t.Error("single point produced a trend line")
	}

	// Identical durations: collinear x, no fit.
	same := []types.TradeRecord{
		withDuration(closedTrade(10, 0), time.Hour),
		withDuration(closedTrade(20, 1), time.Hour),
	}
	if view := analytics.DurationScatter(same); view.Trend != nil {
		t.Error("collinear durations produced a trend line")
	}
}
