package market

import "exchange-simulator/src/models"

// -----------------------------------------------------------------------------
// Fixed table of the 15 tracked perpetual contracts. Base prices anchor the
// random walk; volatility is the per-tick fractional step bound.
// -----------------------------------------------------------------------------

var defaultSymbols = []models.MSymbolSpec{
	{Symbol: "BTC-PERP", BasePrice: 68000, Volatility: 0.0015},
	{Symbol: "ETH-PERP", BasePrice: 2850, Volatility: 0.002},
	{Symbol: "SOL-PERP", BasePrice: 145, Volatility: 0.003},
	{Symbol: "AVAX-PERP", BasePrice: 38, Volatility: 0.003},
	{Symbol: "ARB-PERP", BasePrice: 1.15, Volatility: 0.004},
	{Symbol: "OP-PERP", BasePrice: 2.4, Volatility: 0.004},
	{Symbol: "MATIC-PERP", BasePrice: 0.72, Volatility: 0.0035},
	{Symbol: "DOGE-PERP", BasePrice: 0.16, Volatility: 0.005},
	{Symbol: "XRP-PERP", BasePrice: 0.52, Volatility: 0.003},
	{Symbol: "ADA-PERP", BasePrice: 0.45, Volatility: 0.003},
	{Symbol: "LINK-PERP", BasePrice: 14.5, Volatility: 0.0025},
	{Symbol: "DOT-PERP", BasePrice: 7.2, Volatility: 0.003},
	{Symbol: "NEAR-PERP", BasePrice: 5.8, Volatility: 0.0035},
	{Symbol: "SUI-PERP", BasePrice: 1.05, Volatility: 0.0045},
	{Symbol: "APT-PERP", BasePrice: 8.9, Volatility: 0.004},
}

// -----------------------------------------------------------------------------

// DefaultSymbols returns a copy of the fixed symbol table in display order.
func DefaultSymbols() []models.MSymbolSpec {
	out := make([]models.MSymbolSpec, len(defaultSymbols))
	copy(out, defaultSymbols)
	return out
}
