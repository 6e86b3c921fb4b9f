// Package progress renders a terminal progress bar for downloads.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// IsTerminalFunc reports whether a file descriptor is a terminal.
// Overridable for testing.
var IsTerminalFunc = term.IsTerminal

// Writer wraps an io.Writer and displays transfer progress on output.
// With a known total it shows a bar, percentage, speed, and ETA; otherwise
// it shows bytes transferred and speed.
type Writer struct {
	writer    io.Writer
	output    io.Writer
	total     int64
	written   int64
	startTime time.Time
	lastPrint time.Time
	mu        sync.Mutex
}

// NewWriter creates a progress writer. Pass total <= 0 when the size is
// unknown.
func NewWriter(w io.Writer, total int64, output io.Writer) *Writer {
	return &Writer{
		writer:    w,
		output:    output,
		total:     total,
		startTime: time.Now(),
	}
}

// Write implements io.Writer and updates the progress display.
func (pw *Writer) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if n > 0 {
		pw.mu.Lock()
		pw.written += int64(n)
		pw.print()
		pw.mu.Unlock()
	}
	return n, err
}

// Finish clears the progress line.
func (pw *Writer) Finish() {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	fmt.Fprintf(pw.output, "\r%s\r", strings.Repeat(" ", 80))
}

func (pw *Writer) print() {
	// Rate limit redraws to avoid flicker.
	now := time.Now()
	if now.Sub(pw.lastPrint) < 100*time.Millisecond {
		return
	}
	pw.lastPrint = now

	elapsed := now.Sub(pw.startTime).Seconds()
	if elapsed < 0.1 {
		return
	}
	speed := float64(pw.written) / elapsed

	var line string
	if pw.total > 0 {
		percent := float64(pw.written) / float64(pw.total) * 100
		if percent > 100 {
			percent = 100
		}

		etaStr := "--:--"
		if speed > 0 {
			remaining := float64(pw.total-pw.written) / speed
			if remaining < 0 {
				remaining = 0
			}
			etaStr = formatDuration(remaining)
		}

		const barWidth = 30
		filled := int(percent / 100 * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("=", filled)
		if filled < barWidth {
			bar += ">" + strings.Repeat(" ", barWidth-filled-1)
		}

		line = fmt.Sprintf("\r  [%s] %3.0f%% (%s/%s) %s/s ETA: %s",
			bar, percent, formatBytes(pw.written), formatBytes(pw.total),
			formatBytes(int64(speed)), etaStr)
	} else {
		line = fmt.Sprintf("\r  Downloaded: %s (%s/s)",
			formatBytes(pw.written), formatBytes(int64(speed)))
	}

	// Pad to overwrite leftovers from a longer previous line.
	if len(line) < 80 {
		line += strings.Repeat(" ", 80-len(line))
	}
	_, _ = fmt.Fprint(pw.output, line)
}

func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1fGB", float64(b)/gb)
	case b >= mb:
		return fmt.Sprintf("%.1fMB", float64(b)/mb)
	case b >= kb:
		return fmt.Sprintf("%.1fKB", float64(b)/kb)
	default:
		return fmt.Sprintf("%dB", b)
	}
}

// formatDuration formats seconds as M:SS or H:MM:SS.
func formatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// ShouldShowProgress reports whether progress should be displayed.
// Progress is shown when stdout is a terminal.
func ShouldShowProgress() bool {
	return IsTerminalFunc(int(os.Stdout.Fd()))
}
