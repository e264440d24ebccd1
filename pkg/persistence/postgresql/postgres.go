// Package postgresql provides PostgreSQL persistence of the editor state.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/persistence"
	"github.com/dukex/planeditor/pkg/persistence/sqlbase"
	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPersistence creates a new PostgreSQL persistence layer and brings the schema up to date.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:     database,
		logger: logger,
	}, nil
}

// LoadState returns the state stored under key.
func (p *Persistence) LoadState(ctx context.Context, key string) (*models.EditorState, error) {
	if err := persistence.ValidateKey(key); err != nil {
		return nil, persistence.NewStateError("LoadState", key, err)
	}

	var body []byte

	err := p.db.QueryRowContext(ctx, `SELECT state FROM editor_states WHERE key = $1`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStateError("LoadState", key, persistence.ErrStateNotFound)
		}

		return nil, fmt.Errorf("failed to query state %s: %w", key, err)
	}

	var state models.EditorState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state %s: %w", key, err)
	}

	return &state, nil
}

// SaveState upserts the state under key.
func (p *Persistence) SaveState(ctx context.Context, key string, state *models.EditorState) error {
	if err := persistence.ValidateKey(key); err != nil {
		return persistence.NewStateError("SaveState", key, err)
	}

	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state %s: %w", key, err)
	}

	var planID sql.NullString
	if state != nil && state.Plan != nil {
		planID = sql.NullString{String: state.Plan.ID, Valid: true}
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO editor_states (key, plan_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (key) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`

	_, err = p.db.ExecContext(ctx, query, key, planID, string(body), now)
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}

	return nil
}

// DeleteState removes the state under key. Deleting a missing key is not an error.
func (p *Persistence) DeleteState(ctx context.Context, key string) error {
	if err := persistence.ValidateKey(key); err != nil {
		return persistence.NewStateError("DeleteState", key, err)
	}

	_, err := p.db.ExecContext(ctx, `DELETE FROM editor_states WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
