package market

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Trade Tape Generator
// -----------------------------------------------------------------------------

// GenerateRecentTrades emits `count` synthetic tape entries clustered around
// the current price (uniform noise within ±0.1%), with random size and side
// and timestamps scattered over the last hour. The result is sorted most
// recent first; the post-generation sort means adjacent entries are not
// evenly spaced.
func (ps *PriceStore) GenerateRecentTrades(symbol string, count int) []models.MTrade {
	if count <= 0 {
		count = 20
	}

	price, _ := ps.currentOrBase(symbol)
	if price <= 0 {
		price = 1
	}

	now := time.Now().UnixMilli()
	trades := make([]models.MTrade, count)

	for i := 0; i < count; i++ {
		side := "buy"
		if ps.randFloat() < 0.5 {
			side = "sell"
		}

		trades[i] = models.MTrade{
			ID:        uuid.NewString(),
			Symbol:    symbol,
			Price:     price * (1 + (ps.randFloat()*2-1)*0.001),
			Size:      0.01 + ps.randFloat()*(5000/price),
			Side:      side,
			Timestamp: now - int64(ps.randFloat()*float64(time.Hour.Milliseconds())),
		}
	}

	sort.Slice(trades, func(i, j int) bool {
		return trades[i].Timestamp > trades[j].Timestamp
	})

	return trades
}
