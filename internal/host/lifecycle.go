// Package host runs long-lived script host services until shutdown.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Run blocks until ctx is cancelled or
// the service fails.
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc adapts a function into the Service interface.
type ServiceFunc func(ctx context.Context) error

// Run calls f.
func (f ServiceFunc) Run(ctx context.Context) error { return f(ctx) }

// Lifecycle runs a set of services together. Services are started in the
// order they were added and stopped in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

type running struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLifecycle creates an empty Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		panic("host: NewLifecycle precondition violated: logger must be non-nil")
	}
	return &Lifecycle{logger: logger}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	if name == "" || svc == nil {
		panic("host: Add precondition violated: name and svc must be set")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until SIGINT, SIGTERM, ctx
// cancellation or the first service failure. A service returning nil before
// shutdown is treated as finished, not failed.
//
// Postcondition: every service has returned. The first service error, if
// any, is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	errCh := make(chan error, len(services))
	started := make([]running, 0, len(services))
	for _, ns := range services {
		svcCtx, cancel := context.WithCancel(ctx)
		r := running{name: ns.name, cancel: cancel, done: make(chan struct{})}
		started = append(started, r)
		l.logger.Info("starting service", zap.String("service", ns.name))
		go func() {
			defer close(r.done)
			svcStart := time.Now()
			err := ns.service.Run(svcCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(started)),
		zap.Duration("startup", time.Since(start)),
	)

	var runErr error
	select {
	case <-ctx.Done():
		l.logger.Info("shutting down", zap.NamedError("cause", context.Cause(ctx)))
	case runErr = <-errCh:
		l.logger.Error("service error, shutting down", zap.Error(runErr))
	}

	l.shutdown(started)

	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)),
	)
	return runErr
}

func (l *Lifecycle) shutdown(started []running) {
	shutdownStart := time.Now()
	for i := len(started) - 1; i >= 0; i-- {
		r := started[i]
		svcStart := time.Now()
		r.cancel()
		<-r.done
		l.logger.Info("service stopped",
			zap.String("service", r.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(shutdownStart)),
	)
}
