package storage

import (
	"context"
	"fmt"
	"time"

	"teamprompt/pkg/logger"

	"go.uber.org/zap"
)

// Selection modes. They mirror config.Backend* values.
const (
	ModeAuto   = "auto"
	ModeRemote = "remote"
	ModeLocal  = "local"
)

const defaultProbeTimeout = 2 * time.Second

// SelectOptions describes how to build each backend. OpenMedium is only
// called when the local backend is chosen.
type SelectOptions struct {
	Mode         string
	Sender       Sender
	Prefix       string
	OpenMedium   func(ctx context.Context) (Medium, error)
	ProbeTimeout time.Duration
	Logger       *zap.Logger
}

// Select decides once which backend serves the process. In auto mode a host
// that answers a ping wins; otherwise the local store is used.
func Select(ctx context.Context, opts SelectOptions) (PersistenceBackend, error) {
	log := logger.OrNop(opts.Logger)

	switch opts.Mode {
	case ModeRemote:
		if opts.Sender == nil {
			return nil, fmt.Errorf("remote backend requires a host sender")
		}
		log.Info("persistence backend selected", zap.String("backend", string(KindRemote)))
		return NewRemoteMessageBackend(opts.Sender), nil
	case ModeLocal:
		return openLocal(ctx, opts, log)
	case ModeAuto, "":
		if opts.Sender != nil {
			remote := NewRemoteMessageBackend(opts.Sender)
			timeout := opts.ProbeTimeout
			if timeout <= 0 {
				timeout = defaultProbeTimeout
			}
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			err := remote.Ping(pingCtx)
			cancel()
			if err == nil {
				log.Info("persistence backend selected", zap.String("backend", string(KindRemote)))
				return remote, nil
			}
			log.Warn("host not reachable, using local store", zap.Error(err))
		}
		return openLocal(ctx, opts, log)
	default:
		return nil, fmt.Errorf("unknown backend mode %q", opts.Mode)
	}
}

func openLocal(ctx context.Context, opts SelectOptions, log *zap.Logger) (PersistenceBackend, error) {
	if opts.OpenMedium == nil {
		return nil, fmt.Errorf("local backend requires a durable medium")
	}
	medium, err := opts.OpenMedium(ctx)
	if err != nil {
		return nil, fmt.Errorf("open durable medium: %w", err)
	}
	backend, err := NewLocalCacheBackend(ctx, medium, opts.Prefix, log)
	if err != nil {
		return nil, fmt.Errorf("warm local cache: %w", err)
	}
	log.Info("persistence backend selected", zap.String("backend", string(KindLocal)), zap.String("prefix", opts.Prefix))
	return backend, nil
}
