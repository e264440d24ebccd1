package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const autosaveTimeout = 30 * time.Second

// StartAutosave saves the plan on the cron schedule spec (standard five fields or a descriptor
// such as "@every 30s"). Runs with no unsaved edits do nothing.
func (e *Editor) StartAutosave(spec string) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return NewValidationError("StartAutosave", "invalid_schedule", err.Error(), fmt.Errorf("%w: %w", ErrInvalidAutosaveSpec, err))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cron != nil {
		return NewServiceError("StartAutosave", "already_running", ErrAutosaveRunning)
	}

	logger := cron.VerbosePrintfLogger(slog.NewLogLogger(e.logger.Handler(), slog.LevelDebug))

	e.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))
	e.cron.Schedule(schedule, cron.FuncJob(e.autosave))
	e.cron.Start()

	e.logger.Info("Autosave started", "schedule", spec)

	return nil
}

// StopAutosave stops the schedule and waits for a running save to finish.
func (e *Editor) StopAutosave() {
	e.mu.Lock()
	c := e.cron
	e.cron = nil
	e.mu.Unlock()

	if c == nil {
		return
	}

	<-c.Stop().Done()
}

func (e *Editor) autosave() {
	if !e.Dirty() || e.container.Plan() == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()

	result := e.Save(ctx)
	if !result.Success {
		e.logger.Warn("Autosave failed", "error", result.Error)

		return
	}

	e.logger.Debug("Autosave completed")
}
