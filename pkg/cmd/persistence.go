// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/planeditor/pkg/persistence"
	"github.com/dukex/planeditor/pkg/persistence/file"
	"github.com/dukex/planeditor/pkg/persistence/postgresql"
	"github.com/dukex/planeditor/pkg/persistence/redis"
)

var supportedPersistenceProviders = []string{"file", "redis", "rediss", "postgres", "postgresql"}

// NewPersistence opens the editor state store named by stateURL. URLs without a known scheme
// are treated as file system paths.
func NewPersistence(ctx context.Context, logger *slog.Logger, stateURL string) (persistence.Persistence, error) {
	provider := parsePersistenceProvider(stateURL)

	switch provider {
	case "redis", "rediss":
		store, err := redis.NewPersistence(ctx, stateURL, redis.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to open redis state store: %w", err)
		}

		return store, nil
	case "postgres", "postgresql":
		store, err := postgresql.NewPersistence(ctx, logger, stateURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres state store: %w", err)
		}

		return store, nil
	default:
		return file.NewPersistence(stateURL), nil
	}
}

func parsePersistenceProvider(stateURL string) string {
	parts := strings.SplitN(stateURL, "://", 2)
	if len(parts) < 2 {
		return "file"
	}

	provider := parts[0]
	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "file"
}
