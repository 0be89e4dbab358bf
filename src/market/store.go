package market

import (
	"math/rand"
	"sync"
	"time"

	"exchange-simulator/src/models"
	"exchange-simulator/src/utils"
)

// -----------------------------------------------------------------------------
// PriceStore is the single source of truth for "current price" per symbol,
// with a bounded rolling history per symbol. The browser demo kept this as an
// implicit module-level global behind a typeof-window guard; here it is an
// explicit injectable service with a constructor, an idempotent Initialize,
// and a Reset for tests. All mutation goes through the mutex.
// -----------------------------------------------------------------------------

type PriceStore struct {
	specs        []models.MSymbolSpec
	current      map[string]float64
	history      map[string]*utils.RingBuffer
	historyDepth int
	rng          *rand.Rand
	initialized  bool
	mu           sync.Mutex
}

// -----------------------------------------------------------------------------

// NewPriceStore creates a store over the fixed symbol table.
// seed == 0 selects a time-based seed.
func NewPriceStore(historyDepth int, seed int64) *PriceStore {
	if historyDepth <= 0 {
		historyDepth = 100
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &PriceStore{
		specs:        DefaultSymbols(),
		current:      make(map[string]float64),
		history:      make(map[string]*utils.RingBuffer),
		historyDepth: historyDepth,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// -----------------------------------------------------------------------------

// Initialize seeds current prices from the base-price table and a singleton
// history entry per symbol. Idempotent; safe to call from every consumer.
func (ps *PriceStore) Initialize() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.initializeLocked()
}

func (ps *PriceStore) initializeLocked() {
	if ps.initialized {
		return
	}

	now := time.Now().UnixMilli()
	for _, spec := range ps.specs {
		ps.current[spec.Symbol] = spec.BasePrice
		rb := utils.NewRingBuffer(ps.historyDepth)
		rb.Append(models.MPricePoint{Timestamp: now, Price: spec.BasePrice})
		ps.history[spec.Symbol] = rb
	}
	ps.initialized = true
}

// -----------------------------------------------------------------------------

// UpdatePrices advances every symbol one step of the bounded random walk:
//
//	new = max(cur + Uniform(-vol, vol)*base + (base-cur)*0.001, base*0.5)
//
// The mean-reversion term pulls the walk back toward the base price; the
// floor clamp keeps synthetic prices from collapsing. Appends to history
// (drop-oldest at capacity) and returns a copy of the current price map.
// Always succeeds.
func (ps *PriceStore) UpdatePrices() map[string]float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.initializeLocked()

	now := time.Now().UnixMilli()
	for _, spec := range ps.specs {
		cur := ps.current[spec.Symbol]

		randomComponent := (ps.rng.Float64()*2 - 1) * spec.Volatility * spec.BasePrice
		meanReversion := (spec.BasePrice - cur) * 0.001

		next := cur + randomComponent + meanReversion
		if floor := spec.BasePrice * 0.5; next < floor {
			next = floor
		}

		ps.current[spec.Symbol] = next
		ps.history[spec.Symbol].Append(models.MPricePoint{Timestamp: now, Price: next})
	}

	return ps.snapshotLocked()
}

func (ps *PriceStore) snapshotLocked() map[string]float64 {
	out := make(map[string]float64, len(ps.current))
	for sym, price := range ps.current {
		out[sym] = price
	}
	return out
}

// -----------------------------------------------------------------------------

// CurrentPrice returns the live price for a symbol, falling back to the base
// price when the store has not seen the symbol yet.
func (ps *PriceStore) CurrentPrice(symbol string) float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if price, ok := ps.current[symbol]; ok {
		return price
	}
	for _, spec := range ps.specs {
		if spec.Symbol == symbol {
			return spec.BasePrice
		}
	}
	return 0
}

// -----------------------------------------------------------------------------

// CurrentPrices returns a copy of the live price map.
func (ps *PriceStore) CurrentPrices() map[string]float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.initializeLocked()
	return ps.snapshotLocked()
}

// -----------------------------------------------------------------------------

// History returns the recorded samples for a symbol, oldest first.
func (ps *PriceStore) History(symbol string) []models.MPricePoint {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	rb, ok := ps.history[symbol]
	if !ok {
		return []models.MPricePoint{}
	}
	return rb.GetAll()
}

// -----------------------------------------------------------------------------

// Symbols returns the tracked symbol table in display order.
func (ps *PriceStore) Symbols() []models.MSymbolSpec {
	out := make([]models.MSymbolSpec, len(ps.specs))
	copy(out, ps.specs)
	return out
}

// -----------------------------------------------------------------------------

// Reset drops all live state so the next access re-seeds from the base table.
func (ps *PriceStore) Reset() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.current = make(map[string]float64)
	ps.history = make(map[string]*utils.RingBuffer)
	ps.initialized = false
}

// -----------------------------------------------------------------------------

// spec returns the table entry for a symbol, ok=false for untracked symbols.
func (ps *PriceStore) spec(symbol string) (models.MSymbolSpec, bool) {
	for _, s := range ps.specs {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return models.MSymbolSpec{}, false
}

// -----------------------------------------------------------------------------

// currentOrBase reads the live price under lock, falling back to base price.
// volatility falls back to a generic default for untracked symbols.
func (ps *PriceStore) currentOrBase(symbol string) (price, volatility float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	volatility = 0.002
	if spec, ok := ps.spec(symbol); ok {
		price = spec.BasePrice
		volatility = spec.Volatility
	}
	if live, ok := ps.current[symbol]; ok {
		price = live
	}
	return price, volatility
}

// -----------------------------------------------------------------------------

// randFloat draws from the store's seeded generator under lock so concurrent
// generators do not race on the rand source.
func (ps *PriceStore) randFloat() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.rng.Float64()
}
