// Package draft keeps the event being edited on disk between commands.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eventform/internal/event"
)

const currentVersion = 1

var ErrNoDraft = errors.New("no draft in progress; run `eventform new` first")

type Draft struct {
	Version int         `json:"version"`
	ID      string      `json:"id"`
	Model   event.Model `json:"model"`
	SavedAt string      `json:"saved_at"`
}

func New(m event.Model) *Draft {
	return &Draft{Version: currentVersion, ID: m.ID, Model: m}
}

func Load(path string) (*Draft, error) {
	// #nosec G304 -- path is controlled by the app state location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDraft
		}
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	ensureDefaults(&d)
	return &d, nil
}

// Save writes the draft, stamping SavedAt with now.
func Save(path string, d *Draft, now time.Time) error {
	if d == nil {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	d.ID = d.Model.ID
	d.SavedAt = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// Remove deletes the draft. A missing draft is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func ensureDefaults(d *Draft) {
	if d.Version == 0 {
		d.Version = currentVersion
	}
	if d.ID == "" {
		d.ID = d.Model.ID
	}
}
