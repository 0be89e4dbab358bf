package models

import "time"

// -----------------------------------------------------------------------------
// Simulated AI trading agents
// -----------------------------------------------------------------------------

// Agent lifecycle states. Creation is simulated: a new agent sits in
// "pending" until its activation delay has elapsed.
const (
	AgentStatusPending = "pending"
	AgentStatusActive  = "active"
)

// MAgent is one simulated trading agent.
type MAgent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Strategy   string    `json:"strategy"`
	Symbol     string    `json:"symbol"`
	Leverage   float64   `json:"leverage"`
	Status     string    `json:"status"`
	Followers  int       `json:"followers"`
	CreatedAt  time.Time `json:"created_at"`
	ActivateAt time.Time `json:"activate_at"`
}

// -----------------------------------------------------------------------------

// MEquityPoint is one sample of an agent's synthetic equity curve.
type MEquityPoint struct {
	Timestamp int64   `json:"timestamp"`
	Equity    float64 `json:"equity"`
}

// -----------------------------------------------------------------------------

// MAgentPerformance is the derived performance view of one agent.
// Recomputed on every request from the agent's seeded walk.
type MAgentPerformance struct {
	AgentID     string         `json:"agent_id"`
	Pnl         float64        `json:"pnl"`
	PnlPercent  float64        `json:"pnl_percent"`
	WinRate     float64        `json:"win_rate"`
	SharpeScore float64        `json:"sharpe_score"`
	Followers   int            `json:"followers"`
	Series      []MEquityPoint `json:"series"`
}
