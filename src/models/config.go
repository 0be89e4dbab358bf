package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	LogFile    string            `yaml:"log_file"`
	Storage    MStorageConfig    `yaml:"storage"`
	Simulation MSimulationConfig `yaml:"simulation"`
	Server     MServerConfig     `yaml:"server"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MSimulationConfig struct {
	TickIntervalSeconds int     `yaml:"tick_interval_seconds"`
	HistoryDepth        int     `yaml:"history_depth"`
	OrderBookDepth      int     `yaml:"orderbook_depth"`
	TradeCount          int     `yaml:"trade_count"`
	BaseBalance         float64 `yaml:"base_balance"`
	Seed                int64   `yaml:"seed"` // 0 means time-based
}

type MServerConfig struct {
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
}
