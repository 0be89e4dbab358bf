package models

// MTickMetrics describes the cost of the last simulation tick.
type MTickMetrics struct {
	TickTimeSeconds float64 `json:"tick_time_seconds"`
	SymbolCount     int     `json:"symbol_count"`
	ClientCount     int     `json:"client_count"`
}
