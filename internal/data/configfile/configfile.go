// Package configfile loads and saves task configuration documents.
// JSON is the device's native format; YAML is accepted for hand-written
// configs and converted on send.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/espmon/espmon/internal/core/model"
	"github.com/espmon/espmon/internal/util"
)

// Load reads and validates a task configuration from path. The format is
// chosen by file extension: .yaml/.yml parse as YAML, everything else as
// JSON.
func Load(path string) (*model.TaskConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg model.TaskConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = sonic.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	util.LogDebugf("Loaded %d tasks from %s", len(cfg.Tasks), path)
	return &cfg, nil
}

// Save writes a task configuration to path, format chosen by extension.
// The write is atomic: a temp file in the same directory is renamed over
// the target.
func Save(path string, cfg *model.TaskConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = sonic.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	util.LogDebugf("Saved %d tasks to %s", len(cfg.Tasks), path)
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
