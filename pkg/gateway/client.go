// Package gateway is the REST client for the workflow backend: plan loading, execution
// control and position saves.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/otelhelper"
	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	opGetFullPlan      = "GetFullPlan"
	opCreateExecution  = "CreateExecution"
	opGetExecution     = "GetExecution"
	opAdvanceExecution = "AdvanceExecution"
	opSavePositions    = "SavePositions"
)

// Client talks to the backend API. It sets no timeouts of its own; callers bound requests
// through the context or the http.Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the API rooted at baseURL, e.g. http://localhost:4000/api.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tracer:     otelhelper.NewNoopTracer(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetFullPlan fetches a plan with its steps, transitions, conditions, commands and the command
// type catalog. nameOrID may be the plan name or its id.
func (c *Client) GetFullPlan(ctx context.Context, nameOrID string) (*FullPlanResponse, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gateway.get_full_plan",
		attribute.String(otelhelper.PlanRefKey, nameOrID))
	defer span.End()

	var out FullPlanResponse

	err := c.do(ctx, span, opGetFullPlan, http.MethodGet, "/workflow/plans/"+url.PathEscape(nameOrID), nil, &out, "Failed to fetch plan")
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int(otelhelper.StepCountKey, len(out.Steps)))

	return &out, nil
}

// GetPlan fetches only the plan metadata.
func (c *Client) GetPlan(ctx context.Context, nameOrID string) (*PlanResponse, error) {
	full, err := c.GetFullPlan(ctx, nameOrID)
	if err != nil {
		return nil, err
	}

	return &full.Plan, nil
}

// CreateExecution starts an execution of the plan with the given initial blackboard.
func (c *Client) CreateExecution(ctx context.Context, planID string, initialContext map[string]any) (*ExecutionResponse, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gateway.create_execution",
		attribute.String(otelhelper.PlanIDKey, planID))
	defer span.End()

	if initialContext == nil {
		initialContext = map[string]any{}
	}

	body := createExecutionRequest{PlanID: planID, InitialContext: initialContext}

	var out ExecutionResponse

	if err := c.do(ctx, span, opCreateExecution, http.MethodPost, "/workflow/executions", body, &out, "Failed to create execution"); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.ExecutionIDKey, out.ExecutionID))

	return &out, nil
}

// GetExecution fetches the state of an execution.
func (c *Client) GetExecution(ctx context.Context, executionID string) (*ExecutionResponse, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gateway.get_execution",
		attribute.String(otelhelper.ExecutionIDKey, executionID))
	defer span.End()

	var out ExecutionResponse

	if err := c.do(ctx, span, opGetExecution, http.MethodGet, "/workflow/executions/"+url.PathEscape(executionID), nil, &out, "Failed to get execution"); err != nil {
		return nil, err
	}

	return &out, nil
}

// AdvanceExecution moves the execution to its next step.
func (c *Client) AdvanceExecution(ctx context.Context, executionID string) (*AdvanceResponse, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gateway.advance_execution",
		attribute.String(otelhelper.ExecutionIDKey, executionID))
	defer span.End()

	var out AdvanceResponse

	path := "/workflow/executions/" + url.PathEscape(executionID) + "/advance"
	if err := c.do(ctx, span, opAdvanceExecution, http.MethodPost, path, nil, &out, "Failed to advance execution"); err != nil {
		return nil, err
	}

	return &out, nil
}

// SavePositions sends the position-only save payload for a plan.
func (c *Client) SavePositions(ctx context.Context, planID string, steps []models.StepPosition) error {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gateway.save_positions",
		attribute.String(otelhelper.PlanIDKey, planID),
		attribute.Int(otelhelper.StepCountKey, len(steps)))
	defer span.End()

	if steps == nil {
		steps = []models.StepPosition{}
	}

	return c.do(ctx, span, opSavePositions, http.MethodPut, "/workflow/plans/"+url.PathEscape(planID), savePositionsRequest{Steps: steps}, nil, "Save failed")
}

// do sends one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, span trace.Span, op, method, path string, body, out any, fallback string) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.fail(span, &APIError{Op: op, Message: fmt.Sprintf("%s: %v", fallback, err), Err: err})
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(span, &APIError{Op: op, Message: fmt.Sprintf("%s: %v", fallback, err), Err: err})
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(span, &APIError{Op: op, Message: fmt.Sprintf("%s: %v", fallback, err), Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(otelhelper.HTTPStatusKey, resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse

		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		message := apiErr.Error
		if message == "" {
			message = fmt.Sprintf("%s: %d", fallback, resp.StatusCode)
		}

		return c.fail(span, &APIError{Op: op, Status: resp.StatusCode, Message: message})
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(span, &APIError{Op: op, Status: resp.StatusCode, Message: fmt.Sprintf("%s: invalid response: %v", fallback, err), Err: err})
	}

	return nil
}

func (c *Client) fail(span trace.Span, err *APIError) error {
	otelhelper.SetError(span, err)
	c.logger.Error("Backend request failed", "op", err.Op, "status", err.Status, "error", err.Message)

	return err
}
