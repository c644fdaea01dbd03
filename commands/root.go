package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/espmon/espmon/internal/core/constants"
	"github.com/espmon/espmon/internal/core/monitor"
	"github.com/espmon/espmon/internal/util"
)

var (
	// Logging related
	debug bool

	// Serial link
	portName string
	baudRate int

	// Monitor related
	configPath  string
	timeWindow  float64
	refreshMs   int
	watchConfig bool

	rootCmd = &cobra.Command{
		Use:   "espmon [flags]",
		Short: "Real-time task execution monitor for serial-attached devices",
		Long: `espmon sends periodic task configurations to an embedded device over a
serial link and visualizes task execution as a live Gantt-style timeline.

The device prefixes every task log line with the task name in square
brackets; espmon extracts those events, keeps a sliding window of history
per task, and redraws the timeline several times a second.

Examples:
  espmon --port /dev/ttyUSB0                          # Monitor with default settings
  espmon --port /dev/ttyUSB0 --config tasks.json      # Send config, then monitor
  espmon --port /dev/ttyUSB0 --config tasks.yaml --watch
  espmon --port COM3 --window 30 --refresh-ms 100
  espmon ports                                        # List serial ports
  espmon check tasks.json                             # Validate a config file`,
		RunE: runMonitor,
	}
)

const defaultLogFile = "~/.espmon/logs/espmon.log"

func init() {
	// Serial link configuration
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "P", "",
		"Serial port (e.g. /dev/ttyUSB0, COM3)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", constants.DefaultBaudRate,
		"Serial baud rate")

	// Monitor configuration
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Task configuration file (.json or .yaml) to send on startup")
	rootCmd.Flags().Float64VarP(&timeWindow, "window", "w", constants.DefaultTimeWindow,
		"Retention window in seconds")
	rootCmd.Flags().IntVar(&refreshMs, "refresh-ms", 200,
		"Timeline refresh interval in milliseconds")
	rootCmd.Flags().BoolVar(&watchConfig, "watch", false,
		"Resend the configuration when its file changes")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	initLogging()

	if portName == "" {
		return fmt.Errorf("--port is required (try 'espmon ports')")
	}
	if timeWindow <= 0 {
		return fmt.Errorf("window must be positive, got %v", timeWindow)
	}
	if refreshMs <= 0 {
		return fmt.Errorf("refresh-ms must be positive, got %d", refreshMs)
	}

	config := &monitor.Config{
		Port:            portName,
		Baud:            baudRate,
		ConfigPath:      expandIfSet(configPath),
		TimeWindow:      timeWindow,
		RefreshInterval: time.Duration(refreshMs) * time.Millisecond,
		WatchConfig:     watchConfig,
	}

	manager := monitor.NewManager(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	return manager.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func expandIfSet(path string) string {
	if path == "" {
		return ""
	}
	return expandPath(path)
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
