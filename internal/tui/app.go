package tui

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Iron-Ham/panelkit/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
	host    *host.Host
}

// New creates a new TUI application over h
func New(h *host.Host, opts Options) *App {
	return &App{
		model: NewModel(h, opts),
		host:  h,
	}
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	defer a.model.detach()

	a.mu.Lock()
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)
	program := a.program
	a.mu.Unlock()

	// Quit cleanly on termination so the host can close its panels
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	defer close(done)
	go forwardSignals(sigChan, done, program.Send)

	_, err := program.Run()
	return err
}

// forwardSignals sends tea.Quit on the first signal. It returns once a signal
// is handled or done is closed.
func forwardSignals(sig <-chan os.Signal, done <-chan struct{}, send func(tea.Msg)) {
	select {
	case <-sig:
		send(tea.Quit())
	case <-done:
	}
}

// Send delivers msg to the running program. It is a no-op before Run.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	program := a.program
	a.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}
