package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"exchange-simulator/src/logger"
	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// AsyncPostgreSQLDB is the optional shared session store, for running several
// demo frontends against one backend.
// -----------------------------------------------------------------------------

type AsyncPostgreSQLDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncPostgreSQLDB(cfg *models.MConfig, log *logger.Logger) (*AsyncPostgreSQLDB, error) {
	return &AsyncPostgreSQLDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncPostgreSQLDB) Initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	d.DB = db
	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncPostgreSQLDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS session_flags (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at TIMESTAMPTZ
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
			leverage DOUBLE PRECISION,
			status TEXT,
			followers INTEGER,
			created_at TIMESTAMPTZ,
			activate_at TIMESTAMPTZ
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create agents: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncPostgreSQLDB) SaveSessionFlag(key, value string) error {
	if value == "" {
		_, err := d.DB.Exec("DELETE FROM session_flags WHERE key = $1", key)
		return err
	}

	query := `
		INSERT INTO session_flags (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := d.DB.Exec(query, key, value, time.Now().UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncPostgreSQLDB) LoadSessionFlags() (map[string]string, error) {
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

func (d *AsyncPostgreSQLDB) SaveAgent(agent models.MAgent) error {
	query := `
		INSERT INTO agents (id, name, strategy, symbol, leverage, status, followers, created_at, activate_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			strategy = EXCLUDED.strategy,
			symbol = EXCLUDED.symbol,
			leverage = EXCLUDED.leverage,
			status = EXCLUDED.status,
			followers = EXCLUDED.followers,
			activate_at = EXCLUDED.activate_at
	`
	_, err := d.DB.Exec(query,
		agent.ID, agent.Name, agent.Strategy, agent.Symbol, agent.Leverage,
		agent.Status, agent.Followers, agent.CreatedAt.UTC(), agent.ActivateAt.UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncPostgreSQLDB) LoadAgents() ([]models.MAgent, error) {
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

func (d *AsyncPostgreSQLDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
