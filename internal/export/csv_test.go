package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sherintbrody/journal-backend/internal/export"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func TestWriteTradesCSV(t *testing.T) {
	open := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	closeAt := open.Add(2 * time.Hour)

	trades := []types.TradeRecord{{
		ID:         "t-1",
		Instrument: "EUR/USD",
		LotSize:    decimal.NewFromFloat(0.5),
		EntryPrice: decimal.NewFromFloat(1.1000),
		StopLoss:   decimal.NewFromFloat(1.0950),
		TakeProfit: decimal.NewFromFloat(1.1100),
		ExitPrice:  decimal.NewFromFloat(1.1080),
		Result:     decimal.NewFromFloat(40.567),
		Type:       types.TradeTypeBuy,
		Status:     types.TradeStatusClosed,
		OpenDate:   open,
		CloseDate:  &closeAt,
		Timestamp:  open,
		Emotion:    "calm",
	}}

	var buf bytes.Buffer
	if err := export.WriteTradesCSV(&buf, trades); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}

	header := strings.Join(records[0], ",")
	if !strings.HasPrefix(header, "id,instrument,type,status") {
		t.Errorf("unexpected header order: %s", header)
	}

	row := records[1]
	if row[0] != "t-1" || row[1] != "EUR/USD" {
		t.Errorf("identity columns: %v", row[:2])
	}
	// Currency rounded to 2 decimal places.
	if row[9] != "40.57" {
		t.Errorf("result column: got %s, want 40.57", row[9])
	}
	if row[10] != "2024-03-04T09:00:00Z" {
		t.Errorf("open date column: got %s", row[10])
	}
	if row[11] != "2024-03-04T11:00:00Z" {
		t.Errorf("close date column: got %s", row[11])
	}
}

func TestWriteTradesCSVBlanksUnsetLevels(t *testing.T) {
	trades := []types.TradeRecord{{
		ID:         "t-2",
		Instrument: "NAS100",
		LotSize:    decimal.NewFromInt(1),
		EntryPrice: decimal.NewFromInt(18000),
		Result:     decimal.NewFromInt(-25),
		Type:       types.TradeTypeSell,
		Status:     types.TradeStatusClosed,
		OpenDate:   time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC),
		Timestamp:  time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := export.WriteTradesCSV(&buf, trades); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	row := records[1]
	// stop_loss, take_profit, exit_price and close_date stay blank.
	for _, idx := range []int{6, 7, 8, 11} {
		if row[idx] != "" {
			t.Errorf("column %d should be blank, got %q", idx, row[idx])
		}
	}
}
