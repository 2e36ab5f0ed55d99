package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"clipfit/domain/pipeline"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#38BDF8"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// renderStatus formats one status event as a single line
func renderStatus(ev pipeline.StatusEvent) string {
	switch {
	case ev.Level == pipeline.LevelError:
		return errorStyle.Render("✗ " + ev.Message)
	case ev.Level == pipeline.LevelWarning:
		return warningStyle.Render("! " + ev.Message)
	case ev.State == pipeline.StateComplete:
		return successStyle.Render("✓ " + ev.Message)
	default:
		return infoStyle.Render("• " + ev.Message)
	}
}

// lockedWriter serializes writes from the status subscriber and the command
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// statusPrinter renders status events to an output as they arrive
type statusPrinter struct {
	out      io.Writer
	mu       sync.Mutex
	terminal chan struct{}
	unsub    func()
}

type subscriber interface {
	Subscribe(handler func(pipeline.StatusEvent)) func()
}

// printStatus subscribes to bus and writes every event to out
func printStatus(bus subscriber, out io.Writer) *statusPrinter {
	p := &statusPrinter{out: out, terminal: make(chan struct{}, 16)}
	p.unsub = bus.Subscribe(func(ev pipeline.StatusEvent) {
		fmt.Fprintln(p.out, renderStatus(ev))
		if ev.State.Terminal() {
			select {
			case p.terminal <- struct{}{}:
			default:
			}
		}
	})
	return p
}

// waitTerminal blocks until a complete/failed event has been printed, or the timeout elapses
func (p *statusPrinter) waitTerminal(timeout time.Duration) {
	select {
	case <-p.terminal:
	case <-time.After(timeout):
	}
}

// Close stops printing
func (p *statusPrinter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}
