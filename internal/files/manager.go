package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	stateFileName  = "state.json"
	configFileName = "config.yaml"
)

// Manager centralizes where the state record and config live on disk.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If
// basePath is empty, it falls back to ~/.caketimer (or another location
// determined by ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing all state files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// StatePath resolves the absolute path of the state record.
func (m *Manager) StatePath() string {
	return filepath.Join(m.basePath, stateFileName)
}

// ConfigPath resolves the absolute path of the optional config file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, configFileName)
}

// HasState reports whether a state record exists on disk. A fresh
// install has none.
func (m *Manager) HasState() bool {
	if m == nil {
		return false
	}
	_, err := os.Stat(m.StatePath())
	return err == nil
}

// Load reads the state record. A missing file is a fresh install, not an
// error; a corrupt file degrades per-field via DecodeRecord.
func (m *Manager) Load() (Record, error) {
	if m == nil {
		return DefaultRecord(), errors.New("files.Manager is nil")
	}

	data, err := os.ReadFile(m.StatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRecord(), nil
		}
		return DefaultRecord(), fmt.Errorf("read state: %w", err)
	}
	return DecodeRecord(data), nil
}

// Save writes the record atomically: marshal to a temp file in the same
// directory, then rename over the previous state. A crash mid-write
// leaves the old record intact.
func (m *Manager) Save(rec Record) error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}

	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(m.basePath, stateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Chmod(tmpPath, filePermissions); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state: %w", err)
	}

	if err := os.Rename(tmpPath, m.StatePath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
