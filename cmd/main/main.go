package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"exchange-simulator/src/agents"
	"exchange-simulator/src/config"
	"exchange-simulator/src/interfaces"
	"exchange-simulator/src/ledger"
	"exchange-simulator/src/logger"
	"exchange-simulator/src/market"
	"exchange-simulator/src/models"
	"exchange-simulator/src/server"
	"exchange-simulator/src/session"
	"exchange-simulator/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Optional .env overrides for containers
	_ = godotenv.Load()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyEnvOverrides(cfg)

	// Setup logger
	logger.Setup(cfg.LogLevel, cfg.LogFile)
	appLogger := logger.NewLogger(cfg.Name)

	// 2. Setup Storage
	var db interfaces.IDatabase

	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewAsyncPostgreSQLDB(cfg.MConfig, logger.NewLogger("storage"))
	default:
		// Default to SQLite
		db, err = storage.NewAsyncSQLiteDB(cfg.MConfig, logger.NewLogger("storage"))
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 3. Setup Components
	store := market.NewPriceStore(cfg.Simulation.HistoryDepth, cfg.Simulation.Seed)
	store.Initialize()

	ldg := ledger.NewLedger(cfg.Simulation.BaseBalance)
	ldg.SeedDemo()

	registry := agents.NewRegistry(db)
	sessions := session.NewStore(db)
	sessions.Subscribe(func(key, value string) {
		appLogger.Info("Session flag changed: %s=%q", key, value)
	})

	var srv interfaces.IDataExchanger = server.NewAPIServer(
		cfg.MConfig, logger.NewLogger("server"), store, ldg, registry, sessions)

	// 4. Initial Server State
	initialPrices := store.CurrentPrices()
	ldg.UpdatePositionsPnL(initialPrices)

	srv.UpdateAllDatas(&models.MLatestData{
		Type:      "INITIAL",
		Markets:   store.GenerateMarketData(),
		Portfolio: ldg.PortfolioMetrics(initialPrices),
		Timestamp: time.Now().UnixMilli(),
		Metrics: models.MTickMetrics{
			SymbolCount: len(initialPrices),
		},
	})

	// 5. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 6. Main Loop (Push Model)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wrapWg := &sync.WaitGroup{}
	updatesChan := make(chan models.MPriceTick, 100)

	var ticker interfaces.ITickSource = market.NewTicker(store,
		time.Duration(cfg.Simulation.TickIntervalSeconds)*time.Second)
	if err := ticker.Start(ctx, updatesChan, wrapWg); err != nil {
		appLogger.Critical("Failed to start ticker: %v", err)
		return
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	appLogger.Info("Starting simulation loop (Push Model)...")

	for {
		select {
		case tick, ok := <-updatesChan:
			if !ok {
				appLogger.Info("Ticker closed channel.")
				return
			}

			startProcess := time.Now()

			ldg.UpdatePositionsPnL(tick.Prices)

			payload := &models.MLatestData{
				Type:      "UPDATE",
				Markets:   store.GenerateMarketData(),
				Portfolio: ldg.PortfolioMetrics(tick.Prices),
				Timestamp: tick.Timestamp,
				Metrics: models.MTickMetrics{
					TickTimeSeconds: time.Since(startProcess).Seconds(),
					SymbolCount:     len(tick.Prices),
				},
			}

			srv.UpdateAllDatas(payload)
			srv.Broadcast(payload)

		case <-quit:
			appLogger.Info("Shutting down...")
			cancel()      // Signal ticker to stop
			wrapWg.Wait() // Wait for ticker to close
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Environment Overrides
// -----------------------------------------------------------------------------

func applyEnvOverrides(cfg *config.Config) {
	if host := os.Getenv("SIM_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("SIM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if level := os.Getenv("SIM_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if dbType := os.Getenv("SIM_DB_TYPE"); dbType != "" {
		cfg.Storage.DBType = dbType
	}
	if conn := os.Getenv("SIM_DB_CONNECTION_STRING"); conn != "" {
		cfg.Storage.DBConnectionString = conn
	}
}
