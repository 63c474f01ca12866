package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/contrastscan/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.SiteReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.SiteReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "step-1"},
			&mockStep{name: "step-2"},
			&mockStep{name: "step-3"},
		)

		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddStep(&mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		for _, name := range []string{"a", "b", "c"} {
			name := name
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.SiteReport) error {
					executionOrder = append(executionOrder, name)
					return nil
				},
			})
		}

		report := &model.SiteReport{Site: "example.org"}
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"a", "b", "c"}
		if len(executionOrder) != len(expected) {
			t.Fatalf("executed %d steps, expected %d", len(executionOrder), len(expected))
		}
		for i, name := range expected {
			if executionOrder[i] != name {
				t.Errorf("execution[%d] = %q, expected %q", i, executionOrder[i], name)
			}
		}
		if len(report.PerformedSteps) != 3 {
			t.Errorf("PerformedSteps = %v, expected 3 entries", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("step failed")
		failing := &mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *model.SiteReport) error {
				return stepErr
			},
		}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		report := &model.SiteReport{Site: "example.org"}
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("step after failure must not run")
		}
		if report.ErrorMessage != stepErr.Error() {
			t.Errorf("ErrorMessage = %q, expected %q", report.ErrorMessage, stepErr.Error())
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *model.SiteReport) error {
				return errors.New("step failed")
			},
		}
		after := &mockStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)

		report := &model.SiteReport{Site: "example.org"}
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if after.callCount != 1 {
			t.Error("step after failure must still run with continueOnError")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, &model.SiteReport{Site: "example.org"})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step must not run after cancellation")
		}
	})
}
