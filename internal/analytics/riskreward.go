package analytics

import (
	"strings"

	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/sherintbrody/journal-backend/pkg/utils"
	"github.com/shopspring/decimal"
)

// Point values convert a price distance into account-currency units
// per lot. Most forex pairs quote four decimal places, JPY crosses
// two; indices and crypto trade at face value.
var (
	pointValueForex = decimal.NewFromInt(10000)
	pointValueJPY   = decimal.NewFromInt(100)
	pointValueMetal = decimal.NewFromInt(100)
	pointValueUnit  = decimal.NewFromInt(1)
)

var indexSymbols = map[string]bool{
	"NAS100": true, "US30": true, "US500": true, "SPX500": true,
	"GER40": true, "UK100": true, "JPN225": true, "AUS200": true,
}

var cryptoPrefixes = []string{"BTC", "ETH", "SOL", "XRP"}

// InstrumentPointValue returns the per-lot point value for a symbol.
// Symbols are matched case-insensitively with separators stripped.
func InstrumentPointValue(instrument string) decimal.Decimal {
	sym := utils.FormatSymbol(instrument)

	switch {
	case indexSymbols[sym]:
		return pointValueUnit
	case strings.HasPrefix(sym, "XAU"), strings.HasPrefix(sym, "XAG"):
		return pointValueMetal
	case strings.HasSuffix(sym, "JPY"):
		return pointValueJPY
	}
	for _, p := range cryptoPrefixes {
		if strings.HasPrefix(sym, p) {
			return pointValueUnit
		}
	}
	return pointValueForex
}

// RiskRewardScatter pairs each trade's planned risk:reward ratio with
// its realized result. Trades without both a stop loss and a take
// profit are skipped, as are zero-risk entries and ratios at or above
// maxRR, which guards the scatter against garbage levels.
func RiskRewardScatter(trades []types.TradeRecord, maxRR float64) []types.RiskRewardPoint {
	out := make([]types.RiskRewardPoint, 0, len(trades))
	for _, t := range trades {
		if t.StopLoss.IsZero() || t.TakeProfit.IsZero() {
			continue
		}
		pv := InstrumentPointValue(t.Instrument)
		risk := t.EntryPrice.Sub(t.StopLoss).Abs().Mul(t.LotSize).Mul(pv)
		reward := t.TakeProfit.Sub(t.EntryPrice).Abs().Mul(t.LotSize).Mul(pv)
		if !risk.IsPositive() {
			continue
		}
		rr, _ := reward.Div(risk).Float64()
		if rr <= 0 || rr >= maxRR {
			continue
		}
		outcome := types.OutcomeLoss
		if t.Result.IsPositive() {
			outcome = types.OutcomeWin
		}
		out = append(out, types.RiskRewardPoint{
			Instrument: t.Instrument,
			PlannedRR:  rr,
			Result:     t.Result,
			Outcome:    outcome,
		})
	}
	return out
}
