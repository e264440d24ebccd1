package workflow

import (
	"context"
	"time"

	"github.com/dukex/planeditor/pkg/models"
)

// SaveStatusReset is how long a saved or error status stays visible before reverting to idle.
const SaveStatusReset = 3 * time.Second

// SaveStatus is the save indicator state.
type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)

// SaveResult is the outcome of SavePlan. Error is set only when Success is false.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SavePlan sends the current node positions to the saver. Failures are reported in the result
// and never roll back local state. A call made while another save is in flight is rejected.
func (c *Container) SavePlan(ctx context.Context) SaveResult {
	c.mu.Lock()

	if c.plan == nil || c.plan.ID == "" {
		c.mu.Unlock()

		return SaveResult{Error: ErrNoPlanLoaded.Error()}
	}

	if c.saving {
		c.mu.Unlock()

		return SaveResult{Error: ErrSaveInProgress.Error()}
	}

	planID := c.plan.ID
	steps := make([]models.StepPosition, 0, len(c.nodes))

	for _, node := range c.nodes {
		id := node.ID
		if node.Data.Step != nil {
			id = node.Data.Step.ID
		}

		steps = append(steps, models.StepPosition{ID: id, Position: node.Position})
	}

	c.saving = true
	c.saveErr = ""
	saver := c.saver
	c.mu.Unlock()

	err := ErrNoSaver
	if saver != nil {
		err = saver.SavePositions(ctx, planID, steps)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.saving = false
	c.metrics.Save(err == nil)

	if err != nil {
		message := err.Error()
		if message == "" {
			message = "Save failed"
		}

		c.saveErr = message
		c.failedAt = c.now()
		c.logger.ErrorContext(ctx, "Failed to save plan", "plan_id", planID, "error", err)

		return SaveResult{Error: message}
	}

	c.savedAt = c.now()
	c.logger.InfoContext(ctx, "Plan saved", "plan_id", planID, "steps", len(steps))

	return SaveResult{Success: true}
}

// IsSaving reports whether a save is in flight.
func (c *Container) IsSaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.saving
}

// SaveError returns the message of the latest failed save, cleared when a new save starts.
func (c *Container) SaveError() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.saveErr
}

// LastSaved returns the time of the latest successful save, zero if none.
func (c *Container) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.savedAt
}

// SaveStatus returns the indicator state at now.
func (c *Container) SaveStatus(now time.Time) SaveStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.saving:
		return SaveStatusSaving
	case c.saveErr != "" && now.Sub(c.failedAt) < SaveStatusReset:
		return SaveStatusError
	case c.saveErr == "" && !c.savedAt.IsZero() && now.Sub(c.savedAt) < SaveStatusReset:
		return SaveStatusSaved
	default:
		return SaveStatusIdle
	}
}
