package ledger

import (
	"math"
	"testing"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Portfolio Aggregator
// -----------------------------------------------------------------------------

func TestPortfolioMetricsIdentities(t *testing.T) {
	l := NewLedger(10000)
	l.SeedDemo()

	prices := map[string]float64{
		"ETH-PERP": 2900,
		"BTC-PERP": 67000,
	}
	m := l.PortfolioMetrics(prices)

	positions := l.GetPositions()
	var sumPnl, sumMargin float64
	for _, p := range positions {
		sumPnl += p.Pnl
		sumMargin += p.Margin
	}

	if math.Abs(m.TotalPnl-sumPnl) > 1e-9 {
		t.Errorf("total pnl %v != Σ position pnl %v", m.TotalPnl, sumPnl)
	}
	if math.Abs(m.TradingEquity-sumMargin) > 1e-9 {
		t.Errorf("trading equity %v != Σ margin %v", m.TradingEquity, sumMargin)
	}
	if math.Abs(m.TotalEquity-(10000+sumPnl)) > 1e-9 {
		t.Errorf("total equity %v != base + pnl %v", m.TotalEquity, 10000+sumPnl)
	}
	if m.AvailableBalance < 0 {
		t.Errorf("available balance went negative: %v", m.AvailableBalance)
	}
	if want := sumPnl / sumMargin * 100; math.Abs(m.PnlPercentage-want) > 1e-9 {
		t.Errorf("pnl percentage %v != %v", m.PnlPercentage, want)
	}
}

// -----------------------------------------------------------------------------

func TestPortfolioMetricsEmptyLedger(t *testing.T) {
	l := NewLedger(10000)

	m := l.PortfolioMetrics(nil)

	if m.TotalEquity != 10000 || m.AvailableBalance != 10000 {
		t.Errorf("empty ledger: expected full base balance, got %+v", m)
	}
	if m.PnlPercentage != 0 || m.TotalPnl != 0 || m.TradingEquity != 0 {
		t.Errorf("empty ledger: expected zero pnl aggregates, got %+v", m)
	}
}

// -----------------------------------------------------------------------------

func TestAvailableBalanceClampedAtZero(t *testing.T) {
	// Margin above the base balance must clamp available to zero.
	l := NewLedger(1000)
	l.AddPosition(models.MPosition{
		Symbol:     "BTC-PERP",
		Side:       "long",
		Size:       1,
		EntryPrice: 68000,
		Leverage:   1,
	})

	m := l.PortfolioMetrics(map[string]float64{"BTC-PERP": 68000})
	if m.AvailableBalance != 0 {
		t.Errorf("expected clamped available balance, got %v", m.AvailableBalance)
	}
}

// -----------------------------------------------------------------------------

func TestPortfolioChartAnchors(t *testing.T) {
	l := NewLedger(10000)
	l.SeedDemo()

	prices := map[string]float64{
		"ETH-PERP": 2900,
		"BTC-PERP": 67000,
	}
	points := l.PortfolioChartData(prices)
	m := l.PortfolioMetrics(prices)

	if len(points) != 7 {
		t.Fatalf("expected 7 chart points, got %d", len(points))
	}
	if points[0].Time != "00:00" || points[6].Time != "24:00" {
		t.Errorf("unexpected bucket labels: %s .. %s", points[0].Time, points[6].Time)
	}
	if points[0].Value != 10000 {
		t.Errorf("first point must anchor at base balance, got %v", points[0].Value)
	}
	if math.Abs(points[6].Value-m.TotalEquity) > 1e-9 {
		t.Errorf("last point %v must anchor at equity %v", points[6].Value, m.TotalEquity)
	}
}
