package interfaces

import "exchange-simulator/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the demo session store. It is the
// server-side analog of the browser's localStorage: a handful of flags plus
// user-created agents, nothing more.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveSessionFlag upserts one session flag.
	SaveSessionFlag(key, value string) error

	// -----------------------------------------------------------------------------

	// LoadSessionFlags returns all persisted session flags.
	LoadSessionFlags() (map[string]string, error)

	// -----------------------------------------------------------------------------

	// SaveAgent upserts one created agent.
	SaveAgent(agent models.MAgent) error

	// -----------------------------------------------------------------------------

	// LoadAgents returns all persisted agents.
	LoadAgents() ([]models.MAgent, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
