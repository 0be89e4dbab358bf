package ledger

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Ledger is the in-memory mock of open positions and orders for one demo
// session. It is append-only: positions and orders are never removed, and the
// single mutation after creation is the P&L recompute against live prices.
// Money arithmetic runs through decimal internally so aggregate identities
// (equity = base + total pnl) hold exactly; model fields stay float64.
// -----------------------------------------------------------------------------

type Ledger struct {
	positions   []models.MPosition
	orders      []models.MOrder
	baseBalance decimal.Decimal
	rng         *rand.Rand
	mu          sync.Mutex
}

// -----------------------------------------------------------------------------

// NewLedger creates an empty ledger with the given base balance.
func NewLedger(baseBalance float64) *Ledger {
	if baseBalance <= 0 {
		baseBalance = 10000
	}
	return &Ledger{
		baseBalance: decimal.NewFromFloat(baseBalance),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// -----------------------------------------------------------------------------

// SeedDemo installs the two fixed demo positions and a handful of demo
// orders a fresh session starts with.
func (l *Ledger) SeedDemo() {
	l.AddPosition(models.MPosition{
		Symbol:     "ETH-PERP",
		Side:       "long",
		Size:       1.5,
		EntryPrice: 2850,
		Leverage:   3,
	})
	l.AddPosition(models.MPosition{
		Symbol:     "BTC-PERP",
		Side:       "short",
		Size:       0.1,
		EntryPrice: 68000,
		Leverage:   2,
	})

	l.AddOrder(models.MOrder{
		Symbol: "ETH-PERP",
		Side:   "buy",
		Type:   "market",
		Size:   1.5,
		Price:  2850,
		Filled: 1.5,
		Status: "filled",
	})
	l.AddOrder(models.MOrder{
		Symbol: "BTC-PERP",
		Side:   "sell",
		Type:   "market",
		Size:   0.1,
		Price:  68000,
		Filled: 0.1,
		Status: "filled",
	})
	l.AddOrder(models.MOrder{
		Symbol: "SOL-PERP",
		Side:   "buy",
		Type:   "limit",
		Size:   20,
		Price:  138.5,
		Status: "pending",
	})
}

// -----------------------------------------------------------------------------

// AddPosition appends a position, assigning id, timestamp and derived
// defaults for unset fields. Returns the stored copy.
func (l *Ledger) AddPosition(p models.MPosition) models.MPosition {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().UnixMilli()
	}
	if p.MarkPrice == 0 {
		p.MarkPrice = p.EntryPrice
	}
	if p.Leverage == 0 {
		p.Leverage = 1
	}
	if p.Margin == 0 && p.Leverage > 0 {
		// margin = entry * size / leverage
		margin := decimal.NewFromFloat(p.EntryPrice).
			Mul(decimal.NewFromFloat(p.Size)).
			Div(decimal.NewFromFloat(p.Leverage))
		p.Margin = margin.InexactFloat64()
	}

	l.positions = append(l.positions, p)
	return p
}

// -----------------------------------------------------------------------------

// AddOrder appends an order, assigning id, timestamp and a default status.
// Status is fixed at creation; no cancel or fill effect exists in the mock.
func (l *Ledger) AddOrder(o models.MOrder) models.MOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Timestamp == 0 {
		o.Timestamp = time.Now().UnixMilli()
	}
	if o.Status == "" {
		o.Status = "pending"
	}

	l.orders = append(l.orders, o)
	return o
}

// -----------------------------------------------------------------------------

// UpdatePositionsPnL recomputes mark price and P&L for every position from
// the supplied live prices. This is the only mutation positions ever see.
// Symbols missing from the price map keep their previous mark.
func (l *Ledger) UpdatePositionsPnL(prices map[string]float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updatePnlLocked(prices)
}

func (l *Ledger) updatePnlLocked(prices map[string]float64) {
	for i := range l.positions {
		p := &l.positions[i]

		if mark, ok := prices[p.Symbol]; ok && mark > 0 {
			p.MarkPrice = mark
		}

		// pnl = (mark - entry) * size * leverage, sign-flipped for shorts
		diff := decimal.NewFromFloat(p.MarkPrice).Sub(decimal.NewFromFloat(p.EntryPrice))
		if p.Side == "short" {
			diff = diff.Neg()
		}
		pnl := diff.
			Mul(decimal.NewFromFloat(p.Size)).
			Mul(decimal.NewFromFloat(p.Leverage))
		p.Pnl = pnl.InexactFloat64()

		if p.Margin > 0 {
			p.PnlPercent = pnl.
				Div(decimal.NewFromFloat(p.Margin)).
				Mul(decimal.NewFromInt(100)).
				InexactFloat64()
		} else {
			p.PnlPercent = 0
		}
	}
}

// -----------------------------------------------------------------------------

// GetPositions returns a defensive copy of all positions.
func (l *Ledger) GetPositions() []models.MPosition {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.MPosition, len(l.positions))
	copy(out, l.positions)
	return out
}

// -----------------------------------------------------------------------------

// GetOrders returns a defensive copy of all orders.
func (l *Ledger) GetOrders() []models.MOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.MOrder, len(l.orders))
	copy(out, l.orders)
	return out
}

// -----------------------------------------------------------------------------

// GetTradeHistory projects executed orders into display entries with a
// computed 0.1% taker fee. The fee is derived per call, never persisted.
func (l *Ledger) GetTradeHistory() []models.MTradeHistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	feeRate := decimal.NewFromFloat(0.001)
	out := make([]models.MTradeHistoryEntry, 0, len(l.orders))

	for _, o := range l.orders {
		if o.Filled <= 0 {
			continue
		}

		fee := decimal.NewFromFloat(o.Price).
			Mul(decimal.NewFromFloat(o.Filled)).
			Mul(feeRate)

		out = append(out, models.MTradeHistoryEntry{
			ID:        o.ID,
			Symbol:    o.Symbol,
			Side:      o.Side,
			Size:      o.Filled,
			Price:     o.Price,
			Fee:       fee.InexactFloat64(),
			Timestamp: o.Timestamp,
		})
	}

	return out
}
