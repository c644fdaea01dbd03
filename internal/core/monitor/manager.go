// Package monitor wires the serial link, the event tracker, and the
// terminal display into the live monitoring loop.
package monitor

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/espmon/espmon/internal/core/constants"
	"github.com/espmon/espmon/internal/core/tracker"
	"github.com/espmon/espmon/internal/data/configfile"
	"github.com/espmon/espmon/internal/data/parser"
	"github.com/espmon/espmon/internal/presentation/display"
	"github.com/espmon/espmon/internal/transport"
	"github.com/espmon/espmon/internal/util"
)

// Config carries the monitor's runtime settings.
type Config struct {
	Port            string
	Baud            int
	ConfigPath      string // optional task config sent to the device on startup
	TimeWindow      float64
	RefreshInterval time.Duration
	WatchConfig     bool // resend the config when its file changes
}

// Manager runs the monitoring loop. The serial-reading goroutine and the
// render ticker share one tracker; its lock is the only coordination
// between them.
type Manager struct {
	config  *Config
	tracker *tracker.Tracker
	display *display.GanttDisplay
	port    io.ReadWriteCloser
	now     func() float64

	paused   bool
	pausedAt float64
	showHelp bool
}

// NewManager creates a monitor manager.
func NewManager(config *Config) *Manager {
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = constants.GanttRefreshInterval
	}
	return &Manager{
		config:  config,
		tracker: tracker.New(config.TimeWindow),
		display: display.NewGanttDisplay(),
		now:     nowSeconds,
	}
}

// Tracker exposes the manager's tracker.
func (m *Manager) Tracker() *tracker.Tracker {
	return m.tracker
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// Run opens the device link and drives the monitor until ctx is canceled
// or the user quits.
func (m *Manager) Run(ctx context.Context) error {
	if m.port == nil {
		port, err := transport.OpenPort(m.config.Port, m.config.Baud)
		if err != nil {
			return err
		}
		m.port = port
	}
	defer m.port.Close()

	if m.config.ConfigPath != "" {
		if err := m.resendConfig(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := transport.NewLineReader(ctx, m.port)
	lines := reader.Lines()

	var keys <-chan KeyEvent
	keyboard, err := NewKeyboardReader()
	if err != nil {
		util.LogWarn("Keyboard unavailable, running without shortcuts: " + err.Error())
	} else {
		defer keyboard.Close()
		keys = keyboard.Events()
	}

	var reloads <-chan struct{}
	if m.config.WatchConfig && m.config.ConfigPath != "" {
		ch, err := m.watchConfig(ctx)
		if err != nil {
			util.LogWarn("Config watch unavailable: " + err.Error())
		} else {
			reloads = ch
		}
	}

	m.display.EnterAltScreen()
	defer m.display.ExitAltScreen()

	ticker := time.NewTicker(m.config.RefreshInterval)
	defer ticker.Stop()

	util.LogInfo("Monitor started")

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				// The device link closed; keep rendering the last state.
				util.LogWarn("Serial stream ended")
				lines = nil
				continue
			}
			m.handleLine(line)

		case <-ticker.C:
			m.render()

		case key := <-keys:
			if quit := m.handleKey(key); quit {
				util.LogInfo("Monitor stopped by user")
				return nil
			}

		case <-reloads:
			util.LogInfo("Config file changed, resending")
			if err := m.resendConfig(); err != nil {
				util.LogError("Config resend failed: " + err.Error())
			}
		}
	}
}

// handleLine feeds one raw device line through the parser into the tracker.
func (m *Manager) handleLine(line string) {
	util.LogDebug("device: " + line)
	if name, ok := parser.ExtractTask(line); ok {
		m.tracker.AddEvent(name, m.now())
	}
}

func (m *Manager) render() {
	if m.showHelp {
		m.display.RenderHelp()
		return
	}

	now := m.now()
	if m.paused {
		now = m.pausedAt
	}
	m.display.Render(m.tracker.Snapshot(now), m.paused)
}

// handleKey processes one keyboard event; the return value reports
// whether the monitor should quit.
func (m *Manager) handleKey(key KeyEvent) bool {
	if key.Type == KeyEscape {
		if m.showHelp {
			m.showHelp = false
			return false
		}
		return true
	}

	switch key.Key {
	case 'q', 3: // q or Ctrl+C
		return true
	case 'r':
		m.tracker.Reset()
		util.LogInfo("Timeline reset")
	case 'p':
		m.paused = !m.paused
		if m.paused {
			m.pausedAt = m.now()
		}
	case 'h':
		m.showHelp = !m.showHelp
	case '+', '=':
		m.adjustWindow(constants.WindowAdjustStep)
	case '-', '_':
		m.adjustWindow(-constants.WindowAdjustStep)
	case 's':
		if m.config.ConfigPath == "" {
			util.LogWarn("No config file configured, nothing to resend")
			break
		}
		if err := m.resendConfig(); err != nil {
			util.LogError("Config resend failed: " + err.Error())
		}
	}
	return false
}

func (m *Manager) adjustWindow(delta float64) {
	w := m.tracker.Window() + delta
	if w < constants.MinTimeWindow {
		w = constants.MinTimeWindow
	}
	if err := m.tracker.SetWindow(w); err != nil {
		util.LogWarnf("Window update rejected: %v", err)
		return
	}
	util.LogDebugf("Time window set to %.1fs", w)
}

// resendConfig loads the configured task file and transmits it. The
// tracker is reset first: a new configuration starts a new run on the
// device, so the old epoch and colors no longer apply.
func (m *Manager) resendConfig() error {
	cfg, err := configfile.Load(m.config.ConfigPath)
	if err != nil {
		return err
	}

	m.tracker.Reset()

	sender := transport.NewFrameSender(m.port)
	return sender.Send(cfg)
}

// watchConfig signals on the returned channel whenever the config file
// is rewritten.
func (m *Manager) watchConfig(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors typically replace the file, which
	// would drop a watch set on the file itself.
	if err := watcher.Add(filepath.Dir(m.config.ConfigPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(m.config.ConfigPath)
	ch := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				util.LogError("Config watch error: " + err.Error())
			}
		}
	}()

	return ch, nil
}
