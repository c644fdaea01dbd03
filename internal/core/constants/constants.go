package constants

import "time"

const (
	// Tracking defaults
	DefaultTimeWindow = 10.0 // seconds of history retained per task
	WindowAdjustStep  = 1.0  // seconds added/removed per keyboard adjustment
	MinTimeWindow     = 1.0

	// Render cadence
	GanttRefreshInterval = 200 * time.Millisecond

	// Device link
	DefaultBaudRate  = 115200
	ConfigFrameDelay = 500 * time.Millisecond
	StartMarker      = "START"
	EndMarker        = "END"

	// Device-side configuration limits
	MaxTasks          = 32
	MaxSensorsPerTask = 3
	MinPriority       = 1
	MaxPriority       = 10
)
