package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns successive timestamps one second apart.
func fakeClock(start float64) func() float64 {
	t := start
	return func() float64 {
		t++
		return t - 1
	}
}

type nopPort struct {
	bytes.Buffer
}

func (p *nopPort) Close() error { return nil }

func newTestManager() *Manager {
	m := NewManager(&Config{TimeWindow: 10})
	m.now = fakeClock(100)
	return m
}

func TestHandleLinePipeline(t *testing.T) {
	m := newTestManager()

	m.handleLine("[Sensor] reading ok")
	m.handleLine("no brackets here")
	m.handleLine("[Motor]started")

	snap := m.Tracker().Snapshot(102)
	require.Len(t, snap.Lanes, 2)
	assert.Equal(t, "Motor", snap.Lanes[0].Name)
	assert.Equal(t, "Sensor", snap.Lanes[1].Name)

	// First parsed line fixed the epoch; the unparseable line consumed no tick.
	assert.Equal(t, []float64{0}, snap.Lanes[1].Events)
	assert.Equal(t, []float64{1}, snap.Lanes[0].Events)
}

func TestHandleKeyQuit(t *testing.T) {
	m := newTestManager()

	assert.True(t, m.handleKey(KeyEvent{Key: 'q', Type: KeyChar}))
	assert.True(t, m.handleKey(KeyEvent{Key: 3, Type: KeyChar}))
	assert.True(t, m.handleKey(KeyEvent{Key: 27, Type: KeyEscape}))
}

func TestHandleKeyEscapeClosesHelpFirst(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.handleKey(KeyEvent{Key: 'h', Type: KeyChar}))
	assert.True(t, m.showHelp)

	// First escape closes help, second quits.
	assert.False(t, m.handleKey(KeyEvent{Key: 27, Type: KeyEscape}))
	assert.False(t, m.showHelp)
	assert.True(t, m.handleKey(KeyEvent{Key: 27, Type: KeyEscape}))
}

func TestHandleKeyReset(t *testing.T) {
	m := newTestManager()
	m.handleLine("[Sensor] ok")
	require.Equal(t, 1, m.Tracker().TaskCount())

	m.handleKey(KeyEvent{Key: 'r', Type: KeyChar})
	assert.Equal(t, 0, m.Tracker().TaskCount())
}

func TestHandleKeyPauseFreezesTime(t *testing.T) {
	m := newTestManager()

	m.handleKey(KeyEvent{Key: 'p', Type: KeyChar})
	assert.True(t, m.paused)
	frozen := m.pausedAt

	m.handleKey(KeyEvent{Key: 'p', Type: KeyChar})
	assert.False(t, m.paused)
	assert.Equal(t, frozen, m.pausedAt)
}

func TestHandleKeyWindowAdjust(t *testing.T) {
	m := newTestManager()

	m.handleKey(KeyEvent{Key: '+', Type: KeyChar})
	assert.Equal(t, 11.0, m.Tracker().Window())

	m.handleKey(KeyEvent{Key: '-', Type: KeyChar})
	assert.Equal(t, 10.0, m.Tracker().Window())

	// The window never shrinks below the minimum.
	for i := 0; i < 20; i++ {
		m.handleKey(KeyEvent{Key: '-', Type: KeyChar})
	}
	assert.Equal(t, 1.0, m.Tracker().Window())
}

func TestResendConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	raw := `{"tasks":[{"name":"temp","priority":5,"period_ms":1000,"sensors":["dht11"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	port := &nopPort{}
	m := NewManager(&Config{TimeWindow: 10, ConfigPath: path})
	m.now = fakeClock(0)
	m.port = port

	// Events from a previous run are discarded when a new config goes out.
	m.handleLine("[old] tick")
	require.NoError(t, m.resendConfig())
	assert.Equal(t, 0, m.Tracker().TaskCount())

	out := port.String()
	assert.True(t, strings.HasPrefix(out, "START\n"))
	assert.True(t, strings.HasSuffix(out, "END\n"))
	assert.Contains(t, out, `"name":"temp"`)
}

func TestResendConfigMissingFile(t *testing.T) {
	m := NewManager(&Config{ConfigPath: filepath.Join(t.TempDir(), "absent.json")})
	m.port = &nopPort{}
	assert.Error(t, m.resendConfig())
}

func TestParseKeyInput(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want *KeyEvent
	}{
		{"plain char", []byte{'r'}, &KeyEvent{Key: 'r', Type: KeyChar}},
		{"ctrl-c", []byte{3}, &KeyEvent{Key: 3, Type: KeyChar}},
		{"escape", []byte{27}, &KeyEvent{Key: 27, Type: KeyEscape}},
		{"arrow key ignored", []byte{27, '[', 'A'}, nil},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeyInput(tt.buf)
			assert.Equal(t, tt.want, got)
		})
	}
}
