package agents

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"exchange-simulator/src/interfaces"
	"exchange-simulator/src/logger"
	"exchange-simulator/src/models"
	"exchange-simulator/src/utils"
)

// -----------------------------------------------------------------------------
// Registry holds the simulated AI trading agents: a fixed demo roster plus
// agents created during the session. Creation is simulated: a new agent sits
// in "pending" until its activation delay elapses, standing in for the demo's
// timer-driven registration flow. Created agents are persisted in the session
// store so a restarted demo keeps them.
// -----------------------------------------------------------------------------

const activationDelay = 15 * time.Second

type Registry struct {
	agents []models.MAgent
	db     interfaces.IDatabase
	Logger *logger.Logger
	mu     sync.Mutex
}

// -----------------------------------------------------------------------------

// NewRegistry seeds the demo roster and restores any session-created agents
// from the store. db may be nil (no persistence, used in tests).
func NewRegistry(db interfaces.IDatabase) *Registry {
	r := &Registry{
		db:     db,
		Logger: logger.NewLogger("AgentRegistry"),
	}
	r.seedRoster()

	if db != nil {
		restored, err := db.LoadAgents()
		if err != nil {
			r.Logger.Warning("Failed to restore agents from session store: %v", err)
		} else {
			r.agents = append(r.agents, restored...)
			if len(restored) > 0 {
				r.Logger.Info("Restored %d session agents", len(restored))
			}
		}
	}

	return r
}

// -----------------------------------------------------------------------------

func (r *Registry) seedRoster() {
	now := time.Now()
	roster := []models.MAgent{
		{Name: "Momentum Alpha", Strategy: "momentum", Symbol: "BTC-PERP", Leverage: 3, Followers: 1240},
		{Name: "Grid Weaver", Strategy: "grid", Symbol: "ETH-PERP", Leverage: 2, Followers: 860},
		{Name: "Funding Harvester", Strategy: "funding-arb", Symbol: "SOL-PERP", Leverage: 5, Followers: 2015},
		{Name: "Mean Revert Pro", Strategy: "mean-reversion", Symbol: "AVAX-PERP", Leverage: 2, Followers: 430},
		{Name: "Breakout Scout", Strategy: "breakout", Symbol: "LINK-PERP", Leverage: 4, Followers: 670},
		{Name: "Volatility Surfer", Strategy: "vol-target", Symbol: "DOGE-PERP", Leverage: 3, Followers: 1580},
	}

	for _, a := range roster {
		a.ID = uuid.NewString()
		a.Status = models.AgentStatusActive
		a.CreatedAt = now
		a.ActivateAt = now
		r.agents = append(r.agents, a)
	}
}

// -----------------------------------------------------------------------------

// Create registers a new agent in "pending" state. The agent flips to
// "active" once the activation delay has elapsed (checked lazily on read,
// which keeps the transition deterministic for tests).
func (r *Registry) Create(name, strategy, symbol string, leverage float64) (models.MAgent, error) {
	if name == "" {
		return models.MAgent{}, fmt.Errorf("agent name cannot be empty")
	}
	if leverage <= 0 {
		leverage = 1
	}
	if strategy == "" {
		strategy = "momentum"
	}

	now := time.Now()
	agent := models.MAgent{
		ID:         uuid.NewString(),
		Name:       name,
		Strategy:   strategy,
		Symbol:     symbol,
		Leverage:   leverage,
		Status:     models.AgentStatusPending,
		CreatedAt:  now,
		ActivateAt: now.Add(activationDelay),
	}

	r.mu.Lock()
	r.agents = append(r.agents, agent)
	r.mu.Unlock()

	if r.db != nil {
		if err := r.db.SaveAgent(agent); err != nil {
			r.Logger.Warning("Failed to persist agent %s: %v", agent.ID, err)
		}
	}

	r.Logger.Info("Created agent %s (%s on %s)", name, strategy, symbol)
	return agent, nil
}

// -----------------------------------------------------------------------------

// List returns all agents, demo roster first then by creation time.
func (r *Registry) List() []models.MAgent {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	out := make([]models.MAgent, len(r.agents))
	for i, a := range r.agents {
		out[i] = r.withStatus(a, now)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// -----------------------------------------------------------------------------

// Get returns one agent by id.
func (r *Registry) Get(id string) (models.MAgent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if a.ID == id {
			return r.withStatus(a, time.Now()), true
		}
	}
	return models.MAgent{}, false
}

// withStatus resolves the pending→active transition at read time.
func (r *Registry) withStatus(a models.MAgent, now time.Time) models.MAgent {
	if a.Status == models.AgentStatusPending && !now.Before(a.ActivateAt) {
		a.Status = models.AgentStatusActive
	}
	return a
}

// -----------------------------------------------------------------------------

// Performance derives the agent's synthetic performance view. The equity walk
// is seeded from the agent id, so repeated requests for the same agent see
// the same curve.
func (r *Registry) Performance(id string) (models.MAgentPerformance, bool) {
	agent, ok := r.Get(id)
	if !ok {
		return models.MAgentPerformance{}, false
	}

	h := fnv.New64a()
	h.Write([]byte(agent.ID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	const (
		samples    = 30
		baseEquity = 10000.0
	)

	step := 0.004 * agent.Leverage
	now := time.Now().Truncate(time.Hour)

	equity := baseEquity
	series := make([]models.MEquityPoint, samples)
	returns := make([]float64, 0, samples-1)
	wins := 0

	for i := 0; i < samples; i++ {
		if i > 0 {
			change := (rng.Float64()*2 - 1 + 0.1) * step * equity
			if change > 0 {
				wins++
			}
			returns = append(returns, change/equity)
			equity += change
		}
		series[i] = models.MEquityPoint{
			Timestamp: now.Add(-time.Duration(samples-i) * time.Hour).UnixMilli(),
			Equity:    equity,
		}
	}

	mean, std := utils.CalculateMeanStd(returns)
	sharpe := 0.0
	if std > 0 {
		sharpe = mean / std
	}

	pnl := equity - baseEquity
	return models.MAgentPerformance{
		AgentID:     agent.ID,
		Pnl:         pnl,
		PnlPercent:  pnl / baseEquity * 100,
		WinRate:     float64(wins) / float64(samples-1) * 100,
		SharpeScore: sharpe,
		Followers:   agent.Followers,
		Series:      series,
	}, true
}
