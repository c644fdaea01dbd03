// Package display renders tracker snapshots as a live Gantt-style
// timeline on the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/espmon/espmon/internal/core/tracker"
	"github.com/espmon/espmon/internal/util"
)

const (
	maxLabelWidth    = 20
	fallbackWidth    = 80
	minChartColumns  = 20
	eventCell        = "█"
	gridCell         = "·"
)

// GanttDisplay draws snapshots into a terminal. It owns the alternate
// screen buffer while the monitor runs.
type GanttDisplay struct {
	out         io.Writer
	width       func() int
	inAltScreen bool
}

// NewGanttDisplay creates a display writing to stdout.
func NewGanttDisplay() *GanttDisplay {
	return &GanttDisplay{
		out:   os.Stdout,
		width: terminalWidth,
	}
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 40 {
		return fallbackWidth
	}
	return w
}

// EnterAltScreen switches to the alternate screen buffer and hides the cursor.
func (d *GanttDisplay) EnterAltScreen() {
	if d.inAltScreen {
		return
	}
	fmt.Fprint(d.out, util.EnterAltScreen)
	fmt.Fprint(d.out, util.ClearScreen)
	fmt.Fprint(d.out, util.ClearScrollback)
	fmt.Fprint(d.out, util.MoveCursorHome)
	fmt.Fprint(d.out, util.HideCursor)
	d.inAltScreen = true
}

// ExitAltScreen restores the normal screen buffer and the cursor.
func (d *GanttDisplay) ExitAltScreen() {
	if !d.inAltScreen {
		return
	}
	fmt.Fprint(d.out, util.ClearScreen)
	fmt.Fprint(d.out, util.MoveCursorHome)
	fmt.Fprint(d.out, util.ShowCursor)
	fmt.Fprint(d.out, util.ExitAltScreen)
	d.inAltScreen = false
}

// Render draws one snapshot. Called from the render ticker only.
func (d *GanttDisplay) Render(snap tracker.Snapshot, paused bool) {
	fmt.Fprint(d.out, util.MoveCursorHome)

	width := d.width()
	d.renderHeader(snap, width, paused)

	if len(snap.Lanes) == 0 {
		d.renderWaiting(width)
	} else {
		d.renderLanes(snap, width)
	}

	d.renderFooter(width)
	fmt.Fprint(d.out, util.ClearToEnd)
}

func (d *GanttDisplay) renderHeader(snap tracker.Snapshot, width int, paused bool) {
	title := fmt.Sprintf("%sespmon%s  task execution timeline", util.ColorBold, util.ColorReset)
	rangeInfo := fmt.Sprintf("%.1fs - %.1fs", snap.WindowStart, snap.Now)
	if paused {
		rangeInfo += "  " + util.ColorYellow + "PAUSED" + util.ColorReset
	}

	fmt.Fprintln(d.out, title+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ColorDim+rangeInfo+util.ColorReset+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, strings.Repeat("─", width)+util.ClearLineFromCursor)
}

func (d *GanttDisplay) renderWaiting(width int) {
	fmt.Fprintln(d.out, util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ColorGray+util.CenterText("Waiting for task execution data...", width)+util.ColorReset+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ClearLineFromCursor)
}

func (d *GanttDisplay) renderLanes(snap tracker.Snapshot, width int) {
	labelWidth := labelColumnWidth(snap.Lanes)
	chartWidth := width - labelWidth - 3
	if chartWidth < minChartColumns {
		chartWidth = minChartColumns
	}

	span := snap.Now - snap.WindowStart
	if span <= 0 {
		span = 1
	}

	for _, lane := range snap.Lanes {
		label := util.PadString(util.TruncateString(lane.Name, labelWidth), labelWidth, true)

		cells := make([]bool, chartWidth)
		for _, t := range lane.Events {
			col := int((t - snap.WindowStart) / span * float64(chartWidth-1))
			if col >= 0 && col < chartWidth {
				cells[col] = true
			}
		}

		var row strings.Builder
		row.WriteString(label)
		row.WriteString(" │")
		color := fmt.Sprintf("\033[38;5;%dm", lane.Color.ANSI)
		for _, hit := range cells {
			if hit {
				row.WriteString(color)
				row.WriteString(eventCell)
				row.WriteString(util.ColorReset)
			} else {
				row.WriteString(util.ColorGray)
				row.WriteString(gridCell)
				row.WriteString(util.ColorReset)
			}
		}
		fmt.Fprintln(d.out, row.String()+util.ClearLineFromCursor)
	}

	// Time axis under the chart.
	axis := util.PadString("", labelWidth, true) + " └" + strings.Repeat("─", chartWidth)
	fmt.Fprintln(d.out, util.ColorDim+axis+util.ColorReset+util.ClearLineFromCursor)

	start := fmt.Sprintf("%.1fs", snap.WindowStart)
	end := fmt.Sprintf("%.1fs", snap.Now)
	gap := chartWidth - util.GetDisplayWidth(start) - util.GetDisplayWidth(end)
	if gap < 1 {
		gap = 1
	}
	labels := util.PadString("", labelWidth+2, true) + start + strings.Repeat(" ", gap) + end
	fmt.Fprintln(d.out, util.ColorDim+labels+util.ColorReset+util.ClearLineFromCursor)
}

func (d *GanttDisplay) renderFooter(width int) {
	fmt.Fprintln(d.out, strings.Repeat("─", width)+util.ClearLineFromCursor)
	help := "q quit  r reset  p pause  s resend config  +/- window  h help"
	fmt.Fprintln(d.out, util.ColorDim+help+util.ColorReset+util.ClearLineFromCursor)
}

// RenderHelp draws the keyboard help screen.
func (d *GanttDisplay) RenderHelp() {
	fmt.Fprint(d.out, util.MoveCursorHome)

	fmt.Fprintln(d.out, "espmon - Help"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, strings.Repeat("═", 60)+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "Keyboard shortcuts:"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  q/Esc/Ctrl+C - Quit"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  r            - Reset the timeline (new epoch, new colors)"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  p            - Pause/resume rendering"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  s            - Resend configuration to the device"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  + / -        - Grow/shrink the retention window"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "  h            - Toggle this help"+util.ClearLineFromCursor)
	fmt.Fprintln(d.out, util.ClearLineFromCursor)
	fmt.Fprintln(d.out, "Press 'h' to return..."+util.ClearLineFromCursor)
	fmt.Fprint(d.out, util.ClearToEnd)
}

func labelColumnWidth(lanes []tracker.TaskLane) int {
	width := 0
	for _, lane := range lanes {
		if w := util.GetDisplayWidth(lane.Name); w > width {
			width = w
		}
	}
	if width > maxLabelWidth {
		width = maxLabelWidth
	}
	if width < 4 {
		width = 4
	}
	return width
}
