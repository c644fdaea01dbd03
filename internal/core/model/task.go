package model

import (
	"fmt"

	"github.com/espmon/espmon/internal/core/constants"
)

// Task is one periodic task record as the device firmware consumes it.
type Task struct {
	Name     string   `json:"name" yaml:"name"`
	Priority int      `json:"priority" yaml:"priority"`
	PeriodMs int      `json:"period_ms" yaml:"period_ms"`
	Sensors  []string `json:"sensors" yaml:"sensors"`
}

// TaskConfig is the configuration document transmitted to the device.
type TaskConfig struct {
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// knownSensors is the fixed sensor vocabulary the firmware supports.
var knownSensors = map[string]bool{
	"dht11":      true,
	"ultrasonic": true,
	"mpu6050":    true,
}

// Validate checks a single task record against the firmware's limits.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if t.Priority < constants.MinPriority || t.Priority > constants.MaxPriority {
		return fmt.Errorf("task %q: priority %d out of range %d-%d",
			t.Name, t.Priority, constants.MinPriority, constants.MaxPriority)
	}
	if t.PeriodMs <= 0 {
		return fmt.Errorf("task %q: period must be positive, got %d ms", t.Name, t.PeriodMs)
	}
	if len(t.Sensors) == 0 {
		return fmt.Errorf("task %q: at least one sensor required", t.Name)
	}
	if len(t.Sensors) > constants.MaxSensorsPerTask {
		return fmt.Errorf("task %q: at most %d sensors allowed, got %d",
			t.Name, constants.MaxSensorsPerTask, len(t.Sensors))
	}
	for _, s := range t.Sensors {
		if !knownSensors[s] {
			return fmt.Errorf("task %q: unknown sensor %q", t.Name, s)
		}
	}
	return nil
}

// Validate checks the whole configuration, including the device-wide
// task cap and duplicate names.
func (c *TaskConfig) Validate() error {
	if len(c.Tasks) == 0 {
		return fmt.Errorf("configuration contains no tasks")
	}
	if len(c.Tasks) > constants.MaxTasks {
		return fmt.Errorf("maximum %d tasks allowed, got %d", constants.MaxTasks, len(c.Tasks))
	}

	seen := make(map[string]bool, len(c.Tasks))
	for i := range c.Tasks {
		if err := c.Tasks[i].Validate(); err != nil {
			return err
		}
		if seen[c.Tasks[i].Name] {
			return fmt.Errorf("duplicate task name %q", c.Tasks[i].Name)
		}
		seen[c.Tasks[i].Name] = true
	}
	return nil
}
