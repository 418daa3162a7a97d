// Package export serializes journal data for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// csvHeader is the fixed column order of the trade export.
var csvHeader = []string{
	"id", "instrument", "type", "status", "lot_size",
	"entry_price", "stop_loss", "take_profit", "exit_price",
	"result", "open_date", "close_date", "timestamp", "emotion",
}

// WriteTradesCSV writes the trades as comma-separated text. Currency
// amounts are rounded to 2 decimal places; timestamps use RFC3339.
func WriteTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range trades {
		closeDate := ""
		if t.CloseDate != nil && !t.CloseDate.IsZero() {
			closeDate = t.CloseDate.Format(time.RFC3339)
		}
		row := []string{
			t.ID,
			t.Instrument,
			string(t.Type),
			string(t.Status),
			t.LotSize.String(),
			price(t.EntryPrice),
			price(t.StopLoss),
			price(t.TakeProfit),
			price(t.ExitPrice),
			t.Result.StringFixed(2),
			t.OpenDate.Format(time.RFC3339),
			closeDate,
			t.Timestamp.Format(time.RFC3339),
			t.Emotion,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// price renders a price level, leaving unset (zero) levels blank.
func price(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
