package health

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker pings the database on a fixed interval and remembers the last
// outcome. It starts out unhealthy until the first successful ping.
type Checker struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	healthy  atomic.Bool
}

func NewChecker(pinger Pinger, interval, timeout time.Duration, logger *slog.Logger) *Checker {
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Checker{pinger: pinger, interval: interval, timeout: timeout, logger: logger}
}

// Run checks once immediately, then on every tick until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

func (c *Checker) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.pinger.Ping(pingCtx)
	ok := err == nil
	if prev := c.healthy.Swap(ok); prev != ok {
		if ok {
			c.logger.InfoContext(ctx, "database connection healthy")
		} else {
			c.logger.ErrorContext(ctx, "database connection unhealthy", "error", err)
		}
	}
	return ok
}

func (c *Checker) Healthy() bool {
	return c.healthy.Load()
}
