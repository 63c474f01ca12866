package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/contrastscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor analyzes multiple sites concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-site execution
// 2. It allows different batch strategies (e.g., rate limiting)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each site.
	// A factory ensures each site gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of sites analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent site analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each site to create a
// fresh pipeline instance, so pipeline state never leaks between sites.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple site reports concurrently, mutating
// each report in place. Reports keep their slice positions, so callers
// see results in the order they passed them in.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each site gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// A site whose pipeline fails records the error on its report; the
// batch continues. The error return indicates cancellation only.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, reports []*model.SiteReport) error {
	bp.logger.Info("starting batch analysis",
		"total_sites", len(reports),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, report := range reports {
		i, report := i, report
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("analyzing site",
				"site", report.Site,
				"index", i+1,
				"total", len(reports),
			)

			p := bp.pipelineFactory()
			if err := p.Execute(ctx, report); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// The error is recorded in the report; keep going so the
				// other sites still get analyzed.
				bp.logger.Warn("site analysis failed",
					"site", report.Site,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total_sites", len(reports),
		"elapsed", time.Since(startTime),
	)

	return err
}
