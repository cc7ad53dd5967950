package srv

import (
	"context"
	"time"

	"github.com/sandevgo/misemcp/pkg/log"
)

const shutdownTimeout = 5 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service in its own goroutine. The first
// return value of each Start is delivered on done.
func StartServices(ctx context.Context, services []Service, done chan<- error) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			err := service.Start(ctx)
			if err != nil {
				logger.Error().Err(err).Msgf("%T stopped with error", service)
			}
			done <- err
		}(service)
	}
}

func ShutdownServices(ctx context.Context, services []Service) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for _, service := range services {
		if err := service.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}
}

// Run starts services and blocks until ctx is done or any service
// returns from Start. All services are shut down before Run returns.
func Run(ctx context.Context, services []Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, len(services))
	StartServices(ctx, services, done)

	var err error
	select {
	case <-ctx.Done():
	case err = <-done:
	}

	cancel()
	ShutdownServices(ctx, services)
	return err
}
