package market

import (
	"time"

	"exchange-simulator/src/models"
	"exchange-simulator/src/utils"
)

// -----------------------------------------------------------------------------
// Market Snapshot Generator
// -----------------------------------------------------------------------------

// GenerateMarketData derives one display record per tracked symbol, in fixed
// symbol-table order. The 24h window is approximated by the last 24 history
// samples (or fewer while history is short); volume is synthetic. Pure read
// over the price state; no failure modes.
func (ps *PriceStore) GenerateMarketData() []models.MMarketSnapshot {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.initializeLocked()

	now := time.Now().UnixMilli()
	snapshots := make([]models.MMarketSnapshot, 0, len(ps.specs))

	for _, spec := range ps.specs {
		cur := ps.current[spec.Symbol]
		history := ps.history[spec.Symbol].GetAll()

		// Reference sample: 24 ticks back, or the oldest we have.
		refIdx := 0
		if len(history) > 24 {
			refIdx = len(history) - 24
		}
		ref := history[refIdx].Price

		high, low := cur, cur
		for _, p := range history[refIdx:] {
			if p.Price > high {
				high = p.Price
			}
			if p.Price < low {
				low = p.Price
			}
		}

		change := cur - ref
		snapshots = append(snapshots, models.MMarketSnapshot{
			Symbol:        spec.Symbol,
			Price:         cur,
			Change24h:     change,
			ChangePercent: utils.CalculateChangePercent(cur, ref) * 100,
			High24h:       high,
			Low24h:        low,
			Volume24h:     1_000_000 + ps.rng.Float64()*10_000_000,
			Timestamp:     now,
		})
	}

	return snapshots
}
