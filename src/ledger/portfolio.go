package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Portfolio Aggregator
// -----------------------------------------------------------------------------

// PortfolioMetrics forces a P&L recompute against the supplied prices, then
// reduces the positions into the summary aggregate:
//
//	tradingEquity    = Σ margin
//	totalPnl         = Σ pnl
//	pnlPercentage    = totalPnl / tradingEquity * 100 (0 when no trading equity)
//	availableBalance = max(0, baseBalance - tradingEquity)
//	totalEquity      = baseBalance + totalPnl
func (l *Ledger) PortfolioMetrics(prices map[string]float64) models.MPortfolioMetrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updatePnlLocked(prices)

	tradingEquity := decimal.Zero
	totalPnl := decimal.Zero
	for _, p := range l.positions {
		tradingEquity = tradingEquity.Add(decimal.NewFromFloat(p.Margin))
		totalPnl = totalPnl.Add(decimal.NewFromFloat(p.Pnl))
	}

	pnlPercentage := decimal.Zero
	if !tradingEquity.IsZero() {
		pnlPercentage = totalPnl.Div(tradingEquity).Mul(decimal.NewFromInt(100))
	}

	available := l.baseBalance.Sub(tradingEquity)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return models.MPortfolioMetrics{
		TotalEquity:      l.baseBalance.Add(totalPnl).InexactFloat64(),
		TradingEquity:    tradingEquity.InexactFloat64(),
		AvailableBalance: available.InexactFloat64(),
		TotalPnl:         totalPnl.InexactFloat64(),
		PnlPercentage:    pnlPercentage.InexactFloat64(),
	}
}

// -----------------------------------------------------------------------------

// PortfolioChartData interpolates seven fixed buckets (00:00 → 24:00)
// linearly from the base balance to the current equity, with proportional
// jitter on the interior points. A display smoothing heuristic, not a real
// historical record.
func (l *Ledger) PortfolioChartData(prices map[string]float64) []models.MPortfolioChartPoint {
	metrics := l.PortfolioMetrics(prices)

	l.mu.Lock()
	defer l.mu.Unlock()

	base := l.baseBalance.InexactFloat64()
	delta := metrics.TotalEquity - base

	points := make([]models.MPortfolioChartPoint, 7)
	for i := 0; i < 7; i++ {
		value := base + delta*float64(i)/6

		// Endpoints stay anchored; interior points get jitter proportional
		// to the session's equity move.
		if i > 0 && i < 6 {
			jitter := (l.rng.Float64() - 0.5) * 0.1
			value += jitter * delta
		}

		points[i] = models.MPortfolioChartPoint{
			Time:  fmt.Sprintf("%02d:00", i*4),
			Value: value,
		}
	}

	return points
}
