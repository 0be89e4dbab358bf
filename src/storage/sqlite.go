package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"exchange-simulator/src/logger"
	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// AsyncSQLiteDB is the default session store backend. It holds only the
// localStorage-scale state of one demo session: flags and created agents.
// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS session_flags (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at TIMESTAMP
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create session_flags: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS agents (
			id TEXT PRIMARY KEY,
			name TEXT,
			strategy TEXT,
			symbol TEXT,
			leverage REAL,
			status TEXT,
			followers INTEGER,
			created_at TIMESTAMP,
			activate_at TIMESTAMP
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create agents: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveSessionFlag(key, value string) error {
	// Empty value clears the flag, mirroring key removal in the browser.
	if value == "" {
		_, err := d.DB.Exec("DELETE FROM session_flags WHERE key = ?", key)
		return err
	}

	query := `
		INSERT INTO session_flags (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := d.DB.Exec(query, key, value, time.Now().UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) LoadSessionFlags() (map[string]string, error) {
	rows, err := d.DB.Query("SELECT key, value FROM session_flags")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		flags[k] = v
	}
	return flags, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveAgent(agent models.MAgent) error {
	query := `
		INSERT INTO agents (id, name, strategy, symbol, leverage, status, followers, created_at, activate_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			strategy = excluded.strategy,
			symbol = excluded.symbol,
			leverage = excluded.leverage,
			status = excluded.status,
			followers = excluded.followers,
			activate_at = excluded.activate_at
	`
	_, err := d.DB.Exec(query,
		agent.ID, agent.Name, agent.Strategy, agent.Symbol, agent.Leverage,
		agent.Status, agent.Followers, agent.CreatedAt.UTC(), agent.ActivateAt.UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) LoadAgents() ([]models.MAgent, error) {
	rows, err := d.DB.Query(`
		SELECT id, name, strategy, symbol, leverage, status, followers, created_at, activate_at
		FROM agents ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []models.MAgent
	for rows.Next() {
		var a models.MAgent
		if err := rows.Scan(&a.ID, &a.Name, &a.Strategy, &a.Symbol, &a.Leverage,
			&a.Status, &a.Followers, &a.CreatedAt, &a.ActivateAt); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
