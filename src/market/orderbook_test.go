package market

import (
	"testing"
)

// -----------------------------------------------------------------------------
// Order Book Synthesizer
// -----------------------------------------------------------------------------

func TestGenerateOrderBookShape(t *testing.T) {
	store := NewPriceStore(100, 21)
	store.Initialize()

	depth := 12
	book := store.GenerateOrderBook("ETH-PERP", depth)

	if len(book.Bids) != depth || len(book.Asks) != depth {
		t.Fatalf("expected %d levels per side, got %d bids / %d asks", depth, len(book.Bids), len(book.Asks))
	}

	mid := store.CurrentPrice("ETH-PERP")

	for i, lvl := range book.Bids {
		if lvl.Price >= mid {
			t.Errorf("bid %d at %v not below mid %v", i, lvl.Price, mid)
		}
		if i > 0 && lvl.Price >= book.Bids[i-1].Price {
			t.Errorf("bids not strictly descending at %d", i)
		}
		if i > 0 && lvl.Total < book.Bids[i-1].Total {
			t.Errorf("bid totals not monotone at %d", i)
		}
	}

	for i, lvl := range book.Asks {
		if lvl.Price <= mid {
			t.Errorf("ask %d at %v not above mid %v", i, lvl.Price, mid)
		}
		if i > 0 && lvl.Price <= book.Asks[i-1].Price {
			t.Errorf("asks not strictly ascending at %d", i)
		}
		if i > 0 && lvl.Total < book.Asks[i-1].Total {
			t.Errorf("ask totals not monotone at %d", i)
		}
	}

	if book.Spread <= 0 {
		t.Errorf("expected positive spread, got %v", book.Spread)
	}
	if book.Asks[0].Price <= book.Bids[0].Price {
		t.Errorf("best ask %v not above best bid %v", book.Asks[0].Price, book.Bids[0].Price)
	}
}

// -----------------------------------------------------------------------------

func TestGenerateOrderBookDefaultDepth(t *testing.T) {
	store := NewPriceStore(100, 2)
	store.Initialize()

	book := store.GenerateOrderBook("BTC-PERP", 0)
	if len(book.Bids) != 10 || len(book.Asks) != 10 {
		t.Fatalf("expected default depth of 10, got %d/%d", len(book.Bids), len(book.Asks))
	}
}

// -----------------------------------------------------------------------------

func TestGenerateOrderBookUntrackedSymbol(t *testing.T) {
	store := NewPriceStore(100, 2)
	store.Initialize()

	// Untracked symbols fall back to a unit mid instead of a zero ladder.
	book := store.GenerateOrderBook("NOPE-PERP", 5)
	for _, lvl := range book.Bids {
		if lvl.Price <= 0 {
			t.Fatalf("bid price not positive: %v", lvl.Price)
		}
	}
}
