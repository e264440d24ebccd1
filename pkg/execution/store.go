// Package execution mirrors a live plan execution for the canvas, apart from design-time history.
package execution

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dukex/planeditor/pkg/metrics"
	"github.com/dukex/planeditor/pkg/models"
)

// Store holds the current execution context, editor mode, cached step results and event
// stream status. Events are applied in arrival order. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	context    *models.ExecutionContext
	mode       models.EditorMode
	results    map[string]*models.StepResult
	connection models.ConnectionStatus

	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics counts applied events.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates a store in its initial state.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.reset()

	return s
}

// Reset drops the context and results and returns to design mode, disconnected.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
}

func (s *Store) reset() {
	s.context = nil
	s.mode = models.EditorModeDesign
	s.results = make(map[string]*models.StepResult)
	s.connection = models.ConnectionStatusDisconnected
}

// SetExecutionContext replaces the current context. nil clears it.
func (s *Store) SetExecutionContext(ctx *models.ExecutionContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.context = ctx.Clone()
	if s.context != nil && s.context.Tokens == nil {
		s.context.Tokens = []*models.Token{}
	}
}

// ExecutionContext returns a copy of the current context, or nil.
func (s *Store) ExecutionContext() *models.ExecutionContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.context.Clone()
}

func (s *Store) SetMode(mode models.EditorMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
}

func (s *Store) Mode() models.EditorMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

func (s *Store) SetConnectionStatus(status models.ConnectionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connection = status
}

func (s *Store) ConnectionStatus() models.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connection
}

// AddToken appends a token. It does nothing without a context.
func (s *Store) AddToken(token *models.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addToken(token)
}

// UpdateToken merges the non-empty fields of patch into the token with the given id.
// Unknown ids and a missing context are ignored.
func (s *Store) UpdateToken(tokenID string, patch models.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateToken(tokenID, patch)
}

// RemoveToken drops the token with the given id.
func (s *Store) RemoveToken(tokenID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context == nil {
		return
	}

	tokens := make([]*models.Token, 0, len(s.context.Tokens))
	for _, token := range s.context.Tokens {
		if token.ID != tokenID {
			tokens = append(tokens, token)
		}
	}

	s.context.Tokens = tokens
}

// StepTokens returns copies of every token at the step, in collection order.
func (s *Store) StepTokens(stepID string) []*models.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Token, 0)
	for _, token := range s.stepTokens(stepID) {
		out = append(out, token.Clone())
	}

	return out
}

// StepExecutionState returns the status of the first token at the step in collection order.
// The second result is false when no token is there.
func (s *Store) StepExecutionState(stepID string) (models.ExecutionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.stepTokens(stepID)
	if len(tokens) == 0 {
		return "", false
	}

	return tokens[0].Status, true
}

// SetStepResult caches the result of the latest run of a step, replacing any previous one.
func (s *Store) SetStepResult(stepID string, result *models.StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[stepID] = result.Clone()
}

// StepResult returns a copy of the cached result, or nil.
func (s *Store) StepResult(stepID string) *models.StepResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.results[stepID].Clone()
}

func (s *Store) addToken(token *models.Token) {
	if s.context == nil || token == nil {
		return
	}

	s.context.Tokens = append(s.context.Tokens, token.Clone())
}

func (s *Store) updateToken(tokenID string, patch models.Token) {
	if s.context == nil {
		return
	}

	for _, token := range s.context.Tokens {
		if token.ID != tokenID {
			continue
		}

		if err := models.Merge(token, patch); err != nil {
			s.logger.Error("Failed to update token", "token_id", tokenID, "error", err)
		}

		token.ID = tokenID
	}
}

func (s *Store) stepTokens(stepID string) []*models.Token {
	if s.context == nil {
		return nil
	}

	tokens := make([]*models.Token, 0)

	for _, token := range s.context.Tokens {
		if token.StepID == stepID {
			tokens = append(tokens, token)
		}
	}

	return tokens
}
