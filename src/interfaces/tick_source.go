package interfaces

import (
	"context"
	"sync"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// ITickSource drives the simulation clock. It replaces the browser demo's
// per-component setInterval timers with a single push channel.
// -----------------------------------------------------------------------------

type ITickSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Start begins the tick loop.
	// ctx: controls the lifecycle (cancellation stops the source)
	// outputChan: channel to push ticks to
	// wg: WaitGroup to signal when the source has fully stopped
	Start(ctx context.Context, outputChan chan<- models.MPriceTick, wg *sync.WaitGroup) error

	// -----------------------------------------------------------------------------

	// Stop terminates the tick loop (manual stop; cancelling the context
	// passed to Start is the preferred path).
	Stop() error
}
