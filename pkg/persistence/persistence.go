// Package persistence stores the editor state between sessions.
package persistence

import (
	"context"

	"github.com/dukex/planeditor/pkg/models"
)

// Persistence keeps one editor state per key. Sessions normally use models.EditorStateKey.
type Persistence interface {
	LoadState(ctx context.Context, key string) (*models.EditorState, error)
	SaveState(ctx context.Context, key string, state *models.EditorState) error
	DeleteState(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
