package market

import (
	"time"

	"github.com/google/btree"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Order Book Synthesizer
// -----------------------------------------------------------------------------

type bidLevelItem struct {
	level models.MOrderBookLevel
}

func (b *bidLevelItem) Less(than btree.Item) bool {
	other := than.(*bidLevelItem)
	return b.level.Price > other.level.Price
}

type askLevelItem struct {
	level models.MOrderBookLevel
}

func (a *askLevelItem) Less(than btree.Item) bool {
	other := than.(*askLevelItem)
	return a.level.Price < other.level.Price
}

// -----------------------------------------------------------------------------

// GenerateOrderBook synthesizes a fresh two-sided depth ladder of `depth`
// levels per side around the current price (base price if uninitialized).
// Level spacing widens multiplicatively with depth; cumulative totals are a
// running sum, hence monotone non-decreasing. Bids come out sorted descending
// and asks ascending, so asks[0].Price > bids[0].Price always holds.
func (ps *PriceStore) GenerateOrderBook(symbol string, depth int) models.MOrderBook {
	if depth <= 0 {
		depth = 10
	}

	mid, _ := ps.currentOrBase(symbol)
	if mid <= 0 {
		mid = 1
	}

	baseSpread := mid * 0.0002
	sizeUnit := 5000 / mid

	bids := btree.New(32)
	asks := btree.New(32)

	offset := 0.0
	for i := 0; i < depth; i++ {
		// Spacing widens with depth: step_i = baseSpread * (1 + i*0.15)
		offset += baseSpread * (1 + float64(i)*0.15)

		bidSize := sizeUnit * (1 + float64(i)*0.2) * (0.5 + ps.randFloat())
		askSize := sizeUnit * (1 + float64(i)*0.2) * (0.5 + ps.randFloat())

		bids.ReplaceOrInsert(&bidLevelItem{level: models.MOrderBookLevel{
			Price: mid - offset,
			Size:  bidSize,
		}})
		asks.ReplaceOrInsert(&askLevelItem{level: models.MOrderBookLevel{
			Price: mid + offset,
			Size:  askSize,
		}})
	}

	book := models.MOrderBook{
		Symbol:    symbol,
		Bids:      make([]models.MOrderBookLevel, 0, depth),
		Asks:      make([]models.MOrderBookLevel, 0, depth),
		Timestamp: time.Now().UnixMilli(),
	}

	total := 0.0
	bids.Ascend(func(item btree.Item) bool {
		level := item.(*bidLevelItem).level
		total += level.Size
		level.Total = total
		book.Bids = append(book.Bids, level)
		return true
	})

	total = 0.0
	asks.Ascend(func(item btree.Item) bool {
		level := item.(*askLevelItem).level
		total += level.Size
		level.Total = total
		book.Asks = append(book.Asks, level)
		return true
	})

	book.Spread = book.Asks[0].Price - book.Bids[0].Price
	book.SpreadPercent = book.Spread / mid * 100

	return book
}
