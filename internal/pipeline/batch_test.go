package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/nao1215/contrastscan/internal/model"
)

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != 4 {
			t.Errorf("expected default concurrency 4, got %d", bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			WithConcurrency(2),
		)

		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})
}

// TestBatchProcessorProcessBatch tests concurrent site analysis.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("analyzes every site", func(t *testing.T) {
		t.Parallel()

		var executed atomic.Int64
		factory := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "count",
				doFunc: func(_ context.Context, _ *model.SiteReport) error {
					executed.Add(1)
					return nil
				},
			})
			return p
		}

		reports := make([]*model.SiteReport, 8)
		for i := range reports {
			reports[i] = &model.SiteReport{Site: fmt.Sprintf("site-%d.example", i)}
		}

		bp := NewBatchProcessor(factory, WithConcurrency(3))
		if err := bp.ProcessBatch(context.Background(), reports); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if executed.Load() != int64(len(reports)) {
			t.Errorf("executed %d pipelines, expected %d", executed.Load(), len(reports))
		}
		for i, r := range reports {
			if len(r.PerformedSteps) != 1 {
				t.Errorf("report %d missing performed steps: %v", i, r.PerformedSteps)
			}
		}
	})

	t.Run("continues past per-site failures", func(t *testing.T) {
		t.Parallel()

		factory := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "maybe-fail",
				doFunc: func(_ context.Context, r *model.SiteReport) error {
					if r.Site == "bad.example" {
						return errors.New("boom")
					}
					return nil
				},
			})
			return p
		}

		reports := []*model.SiteReport{
			{Site: "good.example"},
			{Site: "bad.example"},
			{Site: "also-good.example"},
		}

		bp := NewBatchProcessor(factory)
		if err := bp.ProcessBatch(context.Background(), reports); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if reports[1].ErrorMessage != "boom" {
			t.Errorf("failed site ErrorMessage = %q, expected %q", reports[1].ErrorMessage, "boom")
		}
		if reports[0].ErrorMessage != "" {
			t.Errorf("healthy site carries error: %q", reports[0].ErrorMessage)
		}
		if len(reports[2].PerformedSteps) != 1 {
			t.Errorf("site after failure did not run: %v", reports[2].PerformedSteps)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		err := bp.ProcessBatch(ctx, []*model.SiteReport{{Site: "a.example"}})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
