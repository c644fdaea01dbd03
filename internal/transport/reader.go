package transport

import (
	"bufio"
	"context"
	"io"

	"github.com/espmon/espmon/internal/util"
)

// LineReader turns the device's byte stream into a channel of
// newline-terminated lines. A stream that stops producing is not an
// error; the channel simply goes quiet until the device speaks again.
type LineReader struct {
	r     io.Reader
	lines chan string
}

// NewLineReader starts reading lines from r until ctx is canceled or the
// stream ends. The returned reader's channel is closed when reading stops.
func NewLineReader(ctx context.Context, r io.Reader) *LineReader {
	lr := &LineReader{
		r:     r,
		lines: make(chan string, 100),
	}
	go lr.run(ctx)
	return lr
}

// Lines returns the channel of received lines.
func (lr *LineReader) Lines() <-chan string {
	return lr.lines
}

func (lr *LineReader) run(ctx context.Context) {
	defer close(lr.lines)

	scanner := bufio.NewScanner(lr.r)
	scanner.Buffer(make([]byte, 0, 4*1024), 64*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		select {
		case lr.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		util.LogError("Serial read error: " + err.Error())
	}
}
