package market

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"exchange-simulator/src/logger"
	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Ticker advances the price store on a fixed cadence and pushes each tick to
// the output channel. One ticker replaces the browser demo's 2–5 second
// setInterval pollers.
// -----------------------------------------------------------------------------

type Ticker struct {
	store      *PriceStore
	interval   time.Duration
	Logger     *logger.Logger
	cancelFunc context.CancelFunc
	ctx        context.Context
	outputChan chan<- models.MPriceTick
	isRunning  atomic.Bool
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func NewTicker(store *PriceStore, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Ticker{
		store:    store,
		interval: interval,
		Logger:   logger.NewLogger("Ticker"),
	}
}

// -----------------------------------------------------------------------------

func (t *Ticker) Name() string {
	return "SimulationTicker"
}

// -----------------------------------------------------------------------------

// Start begins the tick loop.
func (t *Ticker) Start(parentCtx context.Context, outputChan chan<- models.MPriceTick, wg *sync.WaitGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isRunning.Load() {
		return fmt.Errorf("ticker is already running")
	}

	// Derive a context so Stop() can halt just this ticker
	ctx, cancel := context.WithCancel(parentCtx)
	t.cancelFunc = cancel
	t.ctx = ctx
	t.outputChan = outputChan
	t.isRunning.Store(true)

	t.store.Initialize()

	wg.Add(1)
	go t.runLoop(ctx, outputChan, wg)
	t.Logger.Info("Started simulation ticker (interval %s)", t.interval)
	return nil
}

// -----------------------------------------------------------------------------

// Stop signals the run loop to exit
func (t *Ticker) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isRunning.Load() {
		return fmt.Errorf("ticker is not running")
	}

	if t.cancelFunc != nil {
		t.cancelFunc()
	}
	t.isRunning.Store(false)
	t.Logger.Info("Stopped simulation ticker")
	return nil
}

// -----------------------------------------------------------------------------

// push sends a tick to the output channel, bailing out on cancellation.
func (t *Ticker) push(tick models.MPriceTick) error {
	select {
	case t.outputChan <- tick:
		return nil
	case <-t.ctx.Done():
		return t.ctx.Err()
	}
}

// -----------------------------------------------------------------------------

// runLoop is the main loop that advances prices periodically
func (t *Ticker) runLoop(ctx context.Context, outputChan chan<- models.MPriceTick, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			prices := t.store.UpdatePrices()

			tick := models.MPriceTick{
				Prices:    prices,
				Timestamp: now.UnixMilli(),
				CreatedAt: now.UTC(),
			}

			if err := t.push(tick); err != nil {
				return // context cancelled during push
			}
		}
	}
}
