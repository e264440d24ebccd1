// Package redis stores the editor state as JSON strings in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/persistence"
	json "github.com/goccy/go-json"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces editor state keys.
const DefaultPrefix = "planeditor:state:"

// Persistence implements persistence.Persistence on a Redis client.
type Persistence struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Persistence)

// WithTTL expires stored states after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(p *Persistence) {
		p.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(p *Persistence) {
		p.prefix = prefix
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Persistence) {
		p.logger = logger
	}
}

// NewPersistence connects to the Redis server at url, e.g. redis://localhost:6379/0.
func NewPersistence(ctx context.Context, url string, opts ...Option) (*Persistence, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	p := NewFromClient(backend.NewClient(options), opts...)

	if err := p.HealthCheck(ctx); err != nil {
		_ = p.client.Close()

		return nil, err
	}

	return p, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Persistence {
	p := &Persistence{
		client: client,
		prefix: DefaultPrefix,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Persistence) LoadState(ctx context.Context, key string) (*models.EditorState, error) {
	if err := persistence.ValidateKey(key); err != nil {
		return nil, persistence.NewStateError("LoadState", key, err)
	}

	val, err := p.client.Get(ctx, p.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, persistence.NewStateError("LoadState", key, persistence.ErrStateNotFound)
		}

		return nil, fmt.Errorf("failed to get state from redis: %w", err)
	}

	var state models.EditorState
	if err := json.Unmarshal(val, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &state, nil
}

func (p *Persistence) SaveState(ctx context.Context, key string, state *models.EditorState) error {
	if err := persistence.ValidateKey(key); err != nil {
		return persistence.NewStateError("SaveState", key, err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := p.client.Set(ctx, p.prefix+key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save state to redis: %w", err)
	}

	p.logger.DebugContext(ctx, "Editor state saved", "key", key, "bytes", len(data))

	return nil
}

func (p *Persistence) DeleteState(ctx context.Context, key string) error {
	if err := persistence.ValidateKey(key); err != nil {
		return persistence.NewStateError("DeleteState", key, err)
	}

	if err := p.client.Del(ctx, p.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete state from redis: %w", err)
	}

	return nil
}

func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
