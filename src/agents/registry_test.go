package agents

import (
	"testing"
	"time"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Agent Registry
// -----------------------------------------------------------------------------

func TestSeededRosterIsActive(t *testing.T) {
	r := NewRegistry(nil)

	agents := r.List()
	if len(agents) != 6 {
		t.Fatalf("expected 6 roster agents, got %d", len(agents))
	}
	for _, a := range agents {
		if a.Status != models.AgentStatusActive {
			t.Errorf("%s: expected active roster agent, got %s", a.Name, a.Status)
		}
		if a.ID == "" {
			t.Errorf("%s: missing id", a.Name)
		}
	}
}

// -----------------------------------------------------------------------------

func TestCreateStartsPending(t *testing.T) {
	r := NewRegistry(nil)

	agent, err := r.Create("Test Agent", "momentum", "BTC-PERP", 3)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if agent.Status != models.AgentStatusPending {
		t.Errorf("expected pending status, got %s", agent.Status)
	}
	if !agent.ActivateAt.After(agent.CreatedAt) {
		t.Error("activation time must be after creation")
	}

	got, ok := r.Get(agent.ID)
	if !ok {
		t.Fatal("created agent not found")
	}
	if got.Status != models.AgentStatusPending {
		t.Errorf("expected pending on immediate read, got %s", got.Status)
	}
}

// -----------------------------------------------------------------------------

func TestPendingFlipsActiveAfterDelay(t *testing.T) {
	r := NewRegistry(nil)

	agent, err := r.Create("Soon Active", "grid", "ETH-PERP", 2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Force the activation time into the past instead of sleeping.
	r.mu.Lock()
	for i := range r.agents {
		if r.agents[i].ID == agent.ID {
			r.agents[i].ActivateAt = time.Now().Add(-time.Second)
		}
	}
	r.mu.Unlock()

	got, _ := r.Get(agent.ID)
	if got.Status != models.AgentStatusActive {
		t.Errorf("expected lazy flip to active, got %s", got.Status)
	}
}

// -----------------------------------------------------------------------------

func TestCreateValidation(t *testing.T) {
	r := NewRegistry(nil)

	if _, err := r.Create("", "momentum", "BTC-PERP", 1); err == nil {
		t.Error("expected error for empty name")
	}

	agent, err := r.Create("Defaulted", "", "BTC-PERP", 0)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if agent.Leverage != 1 {
		t.Errorf("expected leverage default of 1, got %v", agent.Leverage)
	}
	if agent.Strategy != "momentum" {
		t.Errorf("expected strategy default, got %q", agent.Strategy)
	}
}

// -----------------------------------------------------------------------------

func TestPerformanceIsDeterministicPerAgent(t *testing.T) {
	r := NewRegistry(nil)
	agents := r.List()

	a, ok := r.Performance(agents[0].ID)
	if !ok {
		t.Fatal("performance not found")
	}
	b, _ := r.Performance(agents[0].ID)

	if a.Pnl != b.Pnl || len(a.Series) != len(b.Series) {
		t.Error("repeated performance reads must return the same curve")
	}
	for i := range a.Series {
		if a.Series[i].Equity != b.Series[i].Equity {
			t.Fatalf("equity series diverged at %d", i)
		}
	}

	if len(a.Series) != 30 {
		t.Errorf("expected 30 equity samples, got %d", len(a.Series))
	}
	if a.WinRate < 0 || a.WinRate > 100 {
		t.Errorf("win rate out of range: %v", a.WinRate)
	}

	other, _ := r.Performance(agents[1].ID)
	if other.Pnl == a.Pnl {
		t.Error("different agents should not share a curve")
	}
}

// -----------------------------------------------------------------------------

func TestPerformanceUnknownAgent(t *testing.T) {
	r := NewRegistry(nil)
	if _, ok := r.Performance("nope"); ok {
		t.Error("expected not found for unknown agent")
	}
}
