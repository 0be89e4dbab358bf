package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"exchange-simulator/src/agents"
	"exchange-simulator/src/ledger"
	"exchange-simulator/src/logger"
	"exchange-simulator/src/market"
	"exchange-simulator/src/models"
	"exchange-simulator/src/session"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine

	// Domain components served over REST
	store    *market.PriceStore
	ledger   *ledger.Ledger
	agents   *agents.Registry
	sessions *session.Store

	// WebSocket clients. The map is owned by the hub goroutine; clientCount
	// mirrors its size for readers outside the hub.
	clients     map[*Client]struct{}
	clientCount atomic.Int64
	broadcast   chan *models.MLatestData // Strongly typed and Buffered Queue
	register    chan *Client
	unregister  chan *Client

	// Local cache
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, log *logger.Logger, store *market.PriceStore,
	ldg *ledger.Ledger, reg *agents.Registry, sess *session.Store) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		engine:   gin.Default(),
		store:    store,
		ledger:   ldg,
		agents:   reg,
		sessions: sess,
		clients:  make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		// Queue size of 256 ensures we can handle bursts of updates
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MLatestData{
			Type:      "INITIAL",
			Markets:   []models.MMarketSnapshot{},
			Timestamp: 0,
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.engine.Use(rateLimitMiddleware(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst))

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// Market data endpoints
	s.engine.GET("/api/markets", s.getMarkets)
	s.engine.GET("/api/orderbook/:symbol", s.getOrderBook)
	s.engine.GET("/api/trades/:symbol", s.getRecentTrades)
	s.engine.GET("/api/candles/:symbol", s.getCandles)

	// Portfolio endpoints
	s.engine.GET("/api/positions", s.getPositions)
	s.engine.GET("/api/orders", s.getOrders)
	s.engine.GET("/api/history", s.getTradeHistory)
	s.engine.GET("/api/portfolio", s.getPortfolio)
	s.engine.GET("/api/portfolio/chart", s.getPortfolioChart)

	// Agent endpoints
	s.engine.GET("/api/agents", s.getAgents)
	s.engine.POST("/api/agents", s.createAgent)
	s.engine.GET("/api/agents/:id", s.getAgent)

	// Session endpoints
	s.engine.GET("/api/session", s.getSession)
	s.engine.PUT("/api/session", s.putSession)

	// Operational endpoints
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	// Clean shutdown
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Market Data Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GenerateMarketData())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getOrderBook(c *gin.Context) {
	symbol := c.Param("symbol")
	depth := intQuery(c, "depth", s.Config.Simulation.OrderBookDepth)

	c.JSON(http.StatusOK, s.store.GenerateOrderBook(symbol, depth))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getRecentTrades(c *gin.Context) {
	symbol := c.Param("symbol")
	count := intQuery(c, "count", s.Config.Simulation.TradeCount)

	c.JSON(http.StatusOK, s.store.GenerateRecentTrades(symbol, count))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCandles(c *gin.Context) {
	symbol := c.Param("symbol")
	interval := c.DefaultQuery("interval", "15m")
	count := intQuery(c, "count", 60)

	c.JSON(http.StatusOK, s.store.GenerateCandleData(symbol, interval, count))
}

// -----------------------------------------------------------------------------
// Portfolio Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getPositions(c *gin.Context) {
	s.ledger.UpdatePositionsPnL(s.store.CurrentPrices())
	c.JSON(http.StatusOK, s.ledger.GetPositions())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.GetOrders())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTradeHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.GetTradeHistory())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.PortfolioMetrics(s.store.CurrentPrices()))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getPortfolioChart(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.PortfolioChartData(s.store.CurrentPrices()))
}

// -----------------------------------------------------------------------------
// Agent Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getAgents(c *gin.Context) {
	c.JSON(http.StatusOK, s.agents.List())
}

// -----------------------------------------------------------------------------

type createAgentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Strategy string  `json:"strategy" binding:"required"`
	Symbol   string  `json:"symbol" binding:"required"`
	Leverage float64 `json:"leverage"`
}

func (s *APIServer) createAgent(c *gin.Context) {
	var req createAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := s.agents.Create(req.Name, req.Strategy, req.Symbol, req.Leverage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, agent)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAgent(c *gin.Context) {
	id := c.Param("id")

	agent, ok := s.agents.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	perf, _ := s.agents.Performance(id)
	c.JSON(http.StatusOK, gin.H{
		"agent":       agent,
		"performance": perf,
	})
}

// -----------------------------------------------------------------------------
// Session Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessions.Flags())
}

// -----------------------------------------------------------------------------

type sessionUpdateRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (s *APIServer) putSession(c *gin.Context) {
	var req sessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.sessions.Flags())
}

// -----------------------------------------------------------------------------
// Operational Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tick_interval_seconds": s.Config.Simulation.TickIntervalSeconds,
		"history_depth":         s.Config.Simulation.HistoryDepth,
		"order_book_depth":      s.Config.Simulation.OrderBookDepth,
		"trade_count":           s.Config.Simulation.TradeCount,
		"symbols":               s.store.Symbols(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.clientCount.Load(),
		"latest_update": timestamp,
	})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
