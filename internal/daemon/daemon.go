package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DaemonFunc represents the work a daemon does.
type DaemonFunc func(ctx context.Context, name string) error

// DaemonManager supervises multiple daemons.
type DaemonManager struct {
	logger       *slog.Logger
	daemons      map[string]DaemonFunc
	restartDelay time.Duration
	wg           sync.WaitGroup
}

// NewDaemonManager creates a new manager.
func NewDaemonManager(logger *slog.Logger) *DaemonManager {
	return &DaemonManager{
		logger:       logger,
		daemons:      make(map[string]DaemonFunc),
		restartDelay: 2 * time.Second,
	}
}

// Add registers a daemon by name.
func (m *DaemonManager) Add(name string, fn DaemonFunc) {
	m.daemons[name] = fn
}

// Start runs all daemons and restarts them if they crash.
func (m *DaemonManager) Start(ctx context.Context) {
	for name, fn := range m.daemons {
		m.wg.Add(1)
		go m.runDaemon(ctx, name, fn)
	}
}

// Wait blocks until all daemons have stopped.
func (m *DaemonManager) Wait() {
	m.wg.Wait()
}

// runDaemon supervises a single daemon, restarting on error or panic.
func (m *DaemonManager) runDaemon(ctx context.Context, name string, fn DaemonFunc) {
	defer m.wg.Done()

	for {
		if ctx.Err() != nil {
			m.logger.Info("Daemon received shutdown signal", "daemon", name)
			return
		}

		err := m.safeRun(ctx, name, fn)
		if err == nil {
			m.logger.Info("Daemon exited cleanly", "daemon", name)
			return
		}

		m.logger.Error("Daemon crashed, restarting", "daemon", name, "error", err, "delay", m.restartDelay)
		select {
		case <-ctx.Done():
			m.logger.Info("Daemon received shutdown signal", "daemon", name)
			return
		case <-time.After(m.restartDelay):
		}
	}
}

func (m *DaemonManager) safeRun(ctx context.Context, name string, fn DaemonFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn(ctx, name)
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("daemon panicked: %v", e.value)
}
