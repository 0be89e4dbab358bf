package market

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// -----------------------------------------------------------------------------
// Property: the bounded random walk never drops below half the base price,
// for any seed and any number of ticks.
// -----------------------------------------------------------------------------

func TestProperty_PriceFloorHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("price >= base*0.5 after arbitrary tick counts", prop.ForAll(
		func(seed int64, ticks int) bool {
			store := NewPriceStore(100, seed)
			store.Initialize()

			for i := 0; i < ticks; i++ {
				prices := store.UpdatePrices()
				for _, spec := range store.Symbols() {
					if prices[spec.Symbol] < spec.BasePrice*0.5 {
						return false
					}
				}
			}
			return true
		},
		gen.Int64Range(1, math.MaxInt32),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}

// -----------------------------------------------------------------------------
// Property: order book structure holds for any depth.
// -----------------------------------------------------------------------------

func TestProperty_OrderBookInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	symbols := []string{"BTC-PERP", "ETH-PERP", "DOGE-PERP", "SUI-PERP"}

	properties.Property("bids descend, asks ascend, totals accumulate", prop.ForAll(
		func(seed int64, depth int, symIdx int) bool {
			store := NewPriceStore(100, seed)
			store.Initialize()

			book := store.GenerateOrderBook(symbols[symIdx], depth)

			if len(book.Bids) != depth || len(book.Asks) != depth {
				return false
			}
			if book.Spread <= 0 || book.Asks[0].Price <= book.Bids[0].Price {
				return false
			}

			for i := 1; i < depth; i++ {
				if book.Bids[i].Price >= book.Bids[i-1].Price {
					return false
				}
				if book.Asks[i].Price <= book.Asks[i-1].Price {
					return false
				}
				if book.Bids[i].Total < book.Bids[i-1].Total {
					return false
				}
				if book.Asks[i].Total < book.Asks[i-1].Total {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, math.MaxInt32),
		gen.IntRange(1, 50),
		gen.IntRange(0, len(symbols)-1),
	))

	properties.TestingRun(t)
}

// -----------------------------------------------------------------------------
// Property: every tape entry stays within the price band around the
// current price, for any requested count.
// -----------------------------------------------------------------------------

func TestProperty_TradePricesNearCurrent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("trade prices within 0.2% of current", prop.ForAll(
		func(seed int64, count int) bool {
			store := NewPriceStore(100, seed)
			store.Initialize()

			price := store.CurrentPrice("LINK-PERP")
			trades := store.GenerateRecentTrades("LINK-PERP", count)

			if len(trades) != count {
				return false
			}
			for _, tr := range trades {
				if math.Abs(tr.Price-price)/price > 0.002 {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, math.MaxInt32),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

// -----------------------------------------------------------------------------
// Property: candle OHLC bounds hold for any interval and count.
// -----------------------------------------------------------------------------

func TestProperty_CandleBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	intervals := []string{"1m", "5m", "15m", "1h", "4h", "1d"}

	properties.Property("high and low bracket open and close", prop.ForAll(
		func(seed int64, count int, intIdx int) bool {
			store := NewPriceStore(100, seed)
			store.Initialize()

			candles := store.GenerateCandleData("XRP-PERP", intervals[intIdx], count)
			if len(candles) != count {
				return false
			}

			for i, c := range candles {
				if c.High < math.Max(c.Open, c.Close) {
					return false
				}
				if c.Low > math.Min(c.Open, c.Close) {
					return false
				}
				if i > 0 && c.Open != candles[i-1].Close {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, math.MaxInt32),
		gen.IntRange(1, 120),
		gen.IntRange(0, len(intervals)-1),
	))

	properties.TestingRun(t)
}
