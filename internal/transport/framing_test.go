package transport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/espmon/espmon/internal/core/model"
)

func testConfig() *model.TaskConfig {
	return &model.TaskConfig{
		Tasks: []model.Task{
			{Name: "temp", Priority: 5, PeriodMs: 1000, Sensors: []string{"dht11"}},
		},
	}
}

func TestFrameSenderSend(t *testing.T) {
	var buf bytes.Buffer
	sender := NewFrameSender(&buf)
	sender.SetDelay(0)

	if err := sender.Send(testConfig()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "START\n") {
		t.Errorf("Expected frame to start with START line, got %q", out)
	}
	if !strings.HasSuffix(out, "END\n") {
		t.Errorf("Expected frame to end with END line, got %q", out)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(out, "START\n"), "END\n")
	if !strings.Contains(payload, `"tasks"`) || !strings.Contains(payload, `"period_ms":1000`) {
		t.Errorf("Unexpected payload %q", payload)
	}
	if strings.Contains(payload, "\n") {
		t.Errorf("Payload must be compact single-line JSON, got %q", payload)
	}
}

func TestFrameSenderRejectsInvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	sender := NewFrameSender(&buf)
	sender.SetDelay(0)

	if err := sender.Send(&model.TaskConfig{}); err == nil {
		t.Fatal("Expected error for empty config")
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing should be written for an invalid config, got %q", buf.String())
	}
}

func TestLineReader(t *testing.T) {
	input := "[Sensor] reading ok\nno brackets here\n[Motor]started\n"
	lr := NewLineReader(context.Background(), strings.NewReader(input))

	var lines []string
	for line := range lr.Lines() {
		lines = append(lines, line)
	}

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "[Sensor] reading ok" || lines[2] != "[Motor]started" {
		t.Errorf("Unexpected lines %v", lines)
	}
}

func TestLineReaderCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer pw.Close()

	lr := NewLineReader(ctx, pr)
	pw.Write([]byte("[Task] one\n"))
	cancel()
	pw.Write([]byte("[Task] two\n"))

	// Drain until the channel closes; cancellation must stop the reader
	// even though the pipe stays open.
	done := make(chan struct{})
	go func() {
		for range lr.Lines() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Reader did not stop after cancellation")
	}
}
