package transport

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/espmon/espmon/internal/core/constants"
	"github.com/espmon/espmon/internal/core/model"
	"github.com/espmon/espmon/internal/util"
)

// FrameSender transmits task configurations using the device's framing
// protocol: a literal START line, the compact JSON payload, then a
// literal END line, with a pause between the writes so the firmware's
// polling read keeps the markers in separate chunks.
type FrameSender struct {
	w     io.Writer
	delay time.Duration
}

// NewFrameSender creates a sender with the standard inter-write delay.
func NewFrameSender(w io.Writer) *FrameSender {
	return &FrameSender{w: w, delay: constants.ConfigFrameDelay}
}

// SetDelay overrides the inter-write delay. Used by tests.
func (s *FrameSender) SetDelay(d time.Duration) {
	s.delay = d
}

// Send validates and transmits a task configuration.
func (s *FrameSender) Send(cfg *model.TaskConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	payload, err := sonic.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	util.LogInfof("Sending configuration with %d tasks", len(cfg.Tasks))

	if _, err := io.WriteString(s.w, constants.StartMarker+"\n"); err != nil {
		return fmt.Errorf("failed to send start marker: %w", err)
	}
	time.Sleep(s.delay)

	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("failed to send config payload: %w", err)
	}
	time.Sleep(s.delay)

	if _, err := io.WriteString(s.w, constants.EndMarker+"\n"); err != nil {
		return fmt.Errorf("failed to send end marker: %w", err)
	}

	util.LogInfo("Configuration sent")
	return nil
}
