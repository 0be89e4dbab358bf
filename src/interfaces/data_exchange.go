package interfaces

import "exchange-simulator/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing state with UI consumers
// (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a state update to all connected listeners.
	Broadcast(state *models.MLatestData)

	// -----------------------------------------------------------------------------
	// UpdateAllDatas replaces the internal state without broadcasting.
	UpdateAllDatas(state *models.MLatestData)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
