// Package file provides file-based persistence of the editor state.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/persistence"
	json "github.com/goccy/go-json"
)

const statesDir = "states"

// Persistence implements the persistence.Persistence interface using the file system. Each key
// is one JSON file under <root>/states.
type Persistence struct {
	root string
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

// LoadState reads the state stored under key.
func (fp *Persistence) LoadState(_ context.Context, key string) (*models.EditorState, error) {
	filePath, err := fp.path(key)
	if err != nil {
		return nil, persistence.NewStateError("LoadState", key, err)
	}

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStateError("LoadState", key, persistence.ErrStateNotFound)
		}

		return nil, fmt.Errorf("failed to read state %s: %w", key, err)
	}

	var state models.EditorState

	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state %s: %w", key, err)
	}

	return &state, nil
}

// SaveState writes the state under key, replacing any previous one. The file is written to a
// temporary name first so a crash never leaves a truncated state behind.
func (fp *Persistence) SaveState(_ context.Context, key string, state *models.EditorState) error {
	filePath, err := fp.path(key)
	if err != nil {
		return persistence.NewStateError("SaveState", key, err)
	}

	err = os.MkdirAll(filepath.Dir(filePath), 0750)
	if err != nil {
		return fmt.Errorf("failed to create states directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state %s: %w", key, err)
	}

	tmpPath := filePath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to replace state %s: %w", key, err)
	}

	return nil
}

// DeleteState removes the state stored under key. Deleting a missing key is not an error.
func (fp *Persistence) DeleteState(_ context.Context, key string) error {
	filePath, err := fp.path(key)
	if err != nil {
		return persistence.NewStateError("DeleteState", key, err)
	}

	err = os.Remove(filePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}

	return nil
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) path(key string) (string, error) {
	if err := persistence.ValidateKey(key); err != nil {
		return "", err
	}

	return filepath.Join(fp.root, statesDir, key+".json"), nil
}
