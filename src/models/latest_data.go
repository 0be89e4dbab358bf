package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

type MLatestData struct {
	Type      string            `json:"type"` // "INITIAL" or "UPDATE"
	Markets   []MMarketSnapshot `json:"markets"`
	Portfolio MPortfolioMetrics `json:"portfolio"`
	Timestamp int64             `json:"timestamp"`
	Metrics   MTickMetrics      `json:"metrics"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
