package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espmon/espmon/internal/core/model"
)

func sampleConfig() *model.TaskConfig {
	return &model.TaskConfig{
		Tasks: []model.Task{
			{Name: "temp", Priority: 5, PeriodMs: 1000, Sensors: []string{"dht11"}},
			{Name: "distance", Priority: 8, PeriodMs: 250, Sensors: []string{"ultrasonic", "mpu6050"}},
		},
	}
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	cfg := sampleConfig()

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	cfg := sampleConfig()

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadJSONCompat(t *testing.T) {
	// The exact document the device GUI historically produced.
	raw := `{"tasks":[{"name":"temp","priority":5,"period_ms":1000,"sensors":["dht11"]}]}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Tasks, 1)
	assert.Equal(t, "temp", cfg.Tasks[0].Name)
	assert.Equal(t, 1000, cfg.Tasks[0].PeriodMs)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	raw := `{"tasks":[{"name":"","priority":5,"period_ms":1000,"sensors":["dht11"]}]}`
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	err := Save(path, &model.TaskConfig{})
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid config must not be written")
}
