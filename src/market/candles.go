package market

import (
	"time"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Candle Synthesizer
// -----------------------------------------------------------------------------

// intervalDurations maps the supported chart intervals to bucket widths.
var intervalDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

const defaultInterval = 15 * time.Minute

// -----------------------------------------------------------------------------

// GenerateCandleData walks `count` OHLCV bars forward from 95% of the current
// price. Each candle opens at the prior close; the close is perturbed by a
// uniform step scaled by the symbol's volatility and floored at 80% of the
// open; high/low are pushed beyond max/min(open, close) by a random fraction
// of the volatility. Candles come out in chronological order, oldest first.
// The temporal chain only holds within a single call; history is not kept
// across calls.
func (ps *PriceStore) GenerateCandleData(symbol, interval string, count int) []models.MCandle {
	if count <= 0 {
		count = 60
	}

	bucket, ok := intervalDurations[interval]
	if !ok {
		bucket = defaultInterval
	}

	current, volatility := ps.currentOrBase(symbol)
	if current <= 0 {
		current = 1
	}

	// Scale the per-tick volatility up to something visible per bar.
	barVol := volatility * 10

	now := time.Now().Truncate(bucket)
	price := current * 0.95
	candles := make([]models.MCandle, count)

	for i := 0; i < count; i++ {
		open := price

		closePrice := open + (ps.randFloat()-0.5)*barVol*open
		if floor := open * 0.8; closePrice < floor {
			closePrice = floor
		}

		high := closePrice
		if open > high {
			high = open
		}
		low := closePrice
		if open < low {
			low = open
		}
		high *= 1 + ps.randFloat()*barVol*0.5
		low *= 1 - ps.randFloat()*barVol*0.5

		candles[i] = models.MCandle{
			Timestamp: now.Add(-time.Duration(count-i) * bucket).UnixMilli(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    10_000 + ps.randFloat()*500_000,
		}

		price = closePrice
	}

	return candles
}
