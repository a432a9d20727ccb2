// Registry for sampled input sources. Sources are registered at startup;
// the controller runs them once per cycle.
package collector

import (
	"context"

	"go.uber.org/zap"

	"github.com/slabsight/slabsight/internal/models"
)

// Registry manages the registered sources and runs them for each snapshot.
type Registry struct {
	sources []Source
	logger  *zap.Logger
}

// NewRegistry creates an empty source registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sources: make([]Source, 0),
		logger:  logger,
	}
}

// Register adds a source if it is available on this system. Unavailable
// sources are logged and skipped.
func (r *Registry) Register(s Source) {
	if s.Available() {
		r.sources = append(r.sources, s)
		r.logger.Info("Registered source", zap.String("name", s.Name()))
	} else {
		r.logger.Warn("Source not available, skipping", zap.String("name", s.Name()))
	}
}

// CollectAll runs every registered source against snap, sequentially and in
// registration order, so all sources share the snapshot's single timestamp.
// A failed source is logged and its snapshot fields keep their zero
// defaults; the cycle continues. Returns the number of sources that
// succeeded.
func (r *Registry) CollectAll(ctx context.Context, snap *models.Snapshot) int {
	ok := 0
	for _, s := range r.sources {
		if err := s.Collect(ctx, snap); err != nil {
			r.logger.Debug("Source read failed",
				zap.String("source", s.Name()),
				zap.Error(err))
			continue
		}
		ok++
	}
	return ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.sources)
}
