package infra

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultWatchInterval = 5 * time.Second

// WatchExecutable closes the returned channel once the running binary is
// replaced on disk, so a supervisor can restart the process with the new one.
// It never fires if the executable cannot be resolved.
func WatchExecutable(ctx context.Context, interval time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	entry := log.WithField("context", "exec_watch")

	exeFilename, err := os.Executable()
	if err != nil {
		entry.WithError(err).Warn("cant resolve executable path")
		return ch
	}
	stat, err := os.Stat(exeFilename)
	if err != nil {
		entry.WithError(err).Warn("cant stat executable")
		return ch
	}
	originalTime := stat.ModTime()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stat, err := os.Stat(exeFilename)
				if err != nil {
					entry.WithError(err).Debug("cant stat executable")
					continue
				}
				if !originalTime.Equal(stat.ModTime()) {
					entry.WithField("path", exeFilename).Warn("executable modified")
					close(ch)
					return
				}
			}
		}
	}()
	return ch
}
