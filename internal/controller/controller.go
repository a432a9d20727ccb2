// Package controller implements the sampling loop: it owns the metric
// store, the snapshot series, and the trend tracker, drives one sample per
// interval, and on cancellation drains into the final report and CSV
// export.
package controller

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slabsight/slabsight/internal/analysis"
	"github.com/slabsight/slabsight/internal/collector"
	"github.com/slabsight/slabsight/internal/config"
	"github.com/slabsight/slabsight/internal/export"
	"github.com/slabsight/slabsight/internal/models"
	"github.com/slabsight/slabsight/internal/report"
	"github.com/slabsight/slabsight/internal/store"
	"github.com/slabsight/slabsight/internal/trend"
)

// Controller orchestrates the sample/sleep loop and the shutdown drain.
// It is the sole owner of the store, series, and tracker; no other
// component holds a reference to them across a sleep boundary.
type Controller struct {
	registry *collector.Registry
	cfg      *config.Config
	logger   *zap.Logger

	store   *store.Store
	series  *models.Series
	tracker *trend.Tracker

	// reportOut receives the rendered text report; defaults to stdout.
	reportOut io.Writer

	// now is the snapshot clock; a variable for tests.
	now func() time.Time

	drainOnce sync.Once
}

// New creates a Controller with empty store, series, and trend state.
func New(registry *collector.Registry, cfg *config.Config, logger *zap.Logger) *Controller {
	return &Controller{
		registry:  registry,
		cfg:       cfg,
		logger:    logger,
		store:     store.New(),
		series:    models.NewSeries(),
		tracker:   trend.NewTracker(trend.DefaultAlpha),
		reportOut: os.Stdout,
		now:       time.Now,
	}
}

// Series exposes the accumulated series, for tests.
func (c *Controller) Series() *models.Series {
	return c.series
}

// Run executes the sampling loop until ctx is cancelled, then drains:
// computes the final correlation result and ranking, renders the report,
// and exports the series to CSV. The timed wait between samples is the
// loop's only blocking point and exits promptly on cancellation.
//
// Run always drains exactly once, regardless of how many samples were
// collected or how often cancellation fires.
func (c *Controller) Run(ctx context.Context) error {
	interval := c.cfg.Collection.Interval.Duration
	c.logger.Info("Sampling started",
		zap.Duration("interval", interval),
		zap.Int("sources", c.registry.Len()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial sample immediately, then one per tick.
	c.sample(ctx)

	for {
		select {
		case <-ctx.Done():
			return c.drain()
		case <-ticker.C:
			c.sample(ctx)
		}
	}
}

// sample runs one collection cycle: read all sources into a fresh snapshot,
// derive rates against the previous one, append, and feed every tracked
// counter through the store and trend tracker.
func (c *Controller) sample(ctx context.Context) {
	snap := models.NewSnapshot(c.now())
	ok := c.registry.CollectAll(ctx, snap)

	prev := c.series.Newest()
	snap.ComputeDerived(prev)
	c.series.Append(snap)

	for name, value := range snap.Counters() {
		c.store.UpdateOrInsert(name, value)
		c.tracker.Observe(name, value)
	}

	c.logger.Info("Sample",
		zap.Int("n", c.series.Count()),
		zap.Uint64("metaspace_kb", snap.MetaspaceUsedKB),
		zap.Float64("slabs_per_sec", snap.ScanRatePerSec),
		zap.Uint64("kmalloc_1k", snap.Kmalloc1kActive),
		zap.Uint64("kmalloc_4k", snap.Kmalloc4kActive),
		zap.Float64("frag", snap.FragmentationIndex),
		zap.Int("sources_ok", ok))
}

// drain runs the shutdown path once: analysis over the full series, report
// rendering, and CSV export. Repeated cancellation cannot re-enter it.
func (c *Controller) drain() error {
	var err error
	c.drainOnce.Do(func() {
		c.logger.Info("Draining", zap.Int("samples", c.series.Count()))

		result := analysis.Analyze(c.series)
		ranking := c.tracker.TopN(c.cfg.Collection.TopN)
		report.Render(c.reportOut, c.series, result, ranking)

		path := c.cfg.Output.CSVPath
		if exportErr := export.WriteCSV(path, c.series); exportErr != nil {
			c.logger.Error("CSV export failed", zap.Error(exportErr))
			err = exportErr
			return
		}
		c.logger.Info("Data exported", zap.String("path", path))
	})
	return err
}
