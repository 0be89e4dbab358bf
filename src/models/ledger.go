package models

// -----------------------------------------------------------------------------
// Mock ledger models. Entries are append-only for the demo session; the only
// mutation after creation is the P&L recompute on positions.
// -----------------------------------------------------------------------------

// MPosition is one synthetic open position.
type MPosition struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"` // "long" or "short"
	Size       float64 `json:"size"`
	EntryPrice float64 `json:"entry_price"`
	MarkPrice  float64 `json:"mark_price"`
	Pnl        float64 `json:"pnl"`
	PnlPercent float64 `json:"pnl_percent"`
	Leverage   float64 `json:"leverage"`
	Margin     float64 `json:"margin"`
	Timestamp  int64   `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MOrder is one synthetic order. Status is fixed at creation; no cancel or
// fill effects are wired to the mock ledger.
type MOrder struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"` // "buy" or "sell"
	Type      string  `json:"type"` // "market" or "limit"
	Size      float64 `json:"size"`
	Price     float64 `json:"price,omitempty"`
	Filled    float64 `json:"filled"`
	Status    string  `json:"status"` // pending|filled|cancelled|partial
	Timestamp int64   `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MTradeHistoryEntry is a display projection of an executed order with a
// computed fee. The fee is never stored on the order itself.
type MTradeHistoryEntry struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
	Fee       float64 `json:"fee"`
	Timestamp int64   `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MPortfolioMetrics is the derived aggregate over all positions.
type MPortfolioMetrics struct {
	TotalEquity      float64 `json:"total_equity"`
	TradingEquity    float64 `json:"trading_equity"`
	AvailableBalance float64 `json:"available_balance"`
	TotalPnl         float64 `json:"total_pnl"`
	PnlPercentage    float64 `json:"pnl_percentage"`
}

// -----------------------------------------------------------------------------

// MPortfolioChartPoint is one bucket of the interpolated equity chart.
type MPortfolioChartPoint struct {
	Time  string  `json:"time"` // "00:00" .. "24:00"
	Value float64 `json:"value"`
}
