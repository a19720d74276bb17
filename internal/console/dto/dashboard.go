package dto

import (
	"encoding/json"
	"time"
)

// AggregatedStats is the rollup shown at the top of the dashboard. It is
// read from the users profile row, not recomputed from raw trades.
type AggregatedStats struct {
	TotalProfit float64 `json:"total_profit"`
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
}

// TradeResponse is the API view of a historical trade.
type TradeResponse struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	TradeType  string          `json:"trade_type"`
	OpenedAt   time.Time       `json:"opened_at"`
	Pnl        float64         `json:"pnl"`
	PnlPercent float64         `json:"pnl_percent"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

// DashboardSummary is the single payload the dashboard page renders.
// A failed read leaves its slot zeroed rather than failing the whole
// summary, so the page still renders with partial data.
type DashboardSummary struct {
	Stats        AggregatedStats   `json:"stats"`
	Accounts     []AccountResponse `json:"accounts"`
	RecentTrades []TradeResponse   `json:"recent_trades"`
}
