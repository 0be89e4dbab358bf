package models

import "time"

// -----------------------------------------------------------------------------
// Market data models (all synthetic, derived from the price state store)
// -----------------------------------------------------------------------------

// MPricePoint is a single sample in a symbol's bounded price history.
type MPricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// -----------------------------------------------------------------------------

// MSymbolSpec describes one tracked perpetual contract.
type MSymbolSpec struct {
	Symbol     string  `json:"symbol"`
	BasePrice  float64 `json:"base_price"`
	Volatility float64 `json:"volatility"`
}

// -----------------------------------------------------------------------------

// MMarketSnapshot is the per-symbol display record derived on every request.
type MMarketSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change24h     float64 `json:"change_24h"`
	ChangePercent float64 `json:"change_percent"`
	High24h       float64 `json:"high_24h"`
	Low24h        float64 `json:"low_24h"`
	Volume24h     float64 `json:"volume_24h"`
	Timestamp     int64   `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MOrderBookLevel is one rung of the synthesized depth ladder.
// Total is the running cumulative size from the top of the side.
type MOrderBookLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
	Total float64 `json:"total"`
}

// MOrderBook holds both sides of the ladder plus derived spread figures.
// Bids are sorted descending by price, asks ascending.
type MOrderBook struct {
	Symbol        string            `json:"symbol"`
	Bids          []MOrderBookLevel `json:"bids"`
	Asks          []MOrderBookLevel `json:"asks"`
	Spread        float64           `json:"spread"`
	SpreadPercent float64           `json:"spread_percent"`
	Timestamp     int64             `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MTrade is one synthetic tape entry. Not persisted, not deduplicated.
type MTrade struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
	Side      string  `json:"side"` // "buy" or "sell"
	Timestamp int64   `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MCandle is one OHLCV bar from the candle synthesizer.
type MCandle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// -----------------------------------------------------------------------------

// MPriceTick is the payload the simulation ticker pushes after each update.
type MPriceTick struct {
	Prices    map[string]float64 `json:"prices"`
	Timestamp int64              `json:"timestamp"`
	CreatedAt time.Time          `json:"created_at"`
}
