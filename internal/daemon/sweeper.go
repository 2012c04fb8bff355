package daemon

import (
	"context"
	"log/slog"
	"time"
)

// MeetingCompleter marks meetings whose end time has passed as completed.
type MeetingCompleter interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

// MeetingSweeper periodically completes elapsed meetings. A failed sweep
// is logged and retried on the next tick.
func MeetingSweeper(completer MeetingCompleter, interval time.Duration, logger *slog.Logger) DaemonFunc {
	return func(ctx context.Context, name string) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Daemon shutting down", "daemon", name)
				return nil
			case <-ticker.C:
				n, err := completer.CompleteElapsed(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					logger.Error("Failed to complete elapsed meetings", "daemon", name, "error", err)
					continue
				}
				if n > 0 {
					logger.Info("Completed elapsed meetings", "daemon", name, "count", n)
				}
			}
		}
	}
}
