package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizharvest/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithInput(nil))
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, documents []string) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Documents: documents})
}

// OnDocumentStart forwards document start events to the UI.
func (c *Controller) OnDocumentStart(path string) {
	c.send(Event{Kind: EventDocumentStart, Path: path})
}

// OnDocumentEnd forwards document outcomes to the UI.
func (c *Controller) OnDocumentEnd(result runner.DocumentResult) {
	c.send(Event{Kind: EventDocumentEnd, Path: result.Path, Result: result})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(runner.Summary) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	if event.EmittedAt.IsZero() && c.now != nil {
		event.EmittedAt = c.now()
	}
	select {
	case c.events <- event:
	default:
	}
}

var _ runner.RunObserver = (*Controller)(nil)
