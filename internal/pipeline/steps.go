package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/contrastscan/internal/analyzer"
	"github.com/nao1215/contrastscan/internal/model"
	"github.com/nao1215/contrastscan/internal/simulate"
)

// TokenizeStep collapses a site's raw element records into deduplicated
// style tokens. Sites whose upstream scan failed carry no records and
// are passed through untouched.
type TokenizeStep struct {
	logger *slog.Logger
}

// TokenizeStepOption configures a TokenizeStep.
type TokenizeStepOption func(*TokenizeStep)

// WithTokenizeLogger sets a custom logger for the tokenize step.
func WithTokenizeLogger(logger *slog.Logger) TokenizeStepOption {
	return func(s *TokenizeStep) {
		s.logger = logger
	}
}

// NewTokenizeStep creates a new tokenization step.
func NewTokenizeStep(opts ...TokenizeStepOption) *TokenizeStep {
	s := &TokenizeStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *TokenizeStep) Name() string {
	return "tokenize"
}

// Do executes the tokenization step.
func (s *TokenizeStep) Do(_ context.Context, report *model.SiteReport) error {
	if report.Failed() {
		s.logger.Debug("skipping tokenize, scan failed upstream", "site", report.Site)
		return nil
	}

	report.Tokens = analyzer.Tokenize(report.Records)
	s.logger.Debug("tokenized records",
		"site", report.Site,
		"records", len(report.Records),
		"tokens", len(report.Tokens),
	)
	return nil
}

// ContrastStep measures every token's channels under normal and
// simulated deficient vision. The simulator is typically wrapped in a
// run-scoped cache shared across all sites of one audit, since the same
// palette colors recur everywhere.
type ContrastStep struct {
	sim    simulate.Simulator
	logger *slog.Logger
}

// ContrastStepOption configures a ContrastStep.
type ContrastStepOption func(*ContrastStep)

// WithContrastLogger sets a custom logger for the contrast step.
func WithContrastLogger(logger *slog.Logger) ContrastStepOption {
	return func(s *ContrastStep) {
		s.logger = logger
	}
}

// NewContrastStep creates a new contrast measurement step.
func NewContrastStep(sim simulate.Simulator, opts ...ContrastStepOption) *ContrastStep {
	s := &ContrastStep{sim: sim, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ContrastStep) Name() string {
	return "contrast"
}

// Do executes the contrast measurement step.
func (s *ContrastStep) Do(ctx context.Context, report *model.SiteReport) error {
	if report.Failed() {
		return nil
	}

	for _, tok := range report.Tokens {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		analyzer.ComputeContrast(tok, s.sim)
	}
	return nil
}

// ClassifyStep scores measured tokens against their thresholds.
type ClassifyStep struct {
	logger *slog.Logger
}

// ClassifyStepOption configures a ClassifyStep.
type ClassifyStepOption func(*ClassifyStep)

// WithClassifyLogger sets a custom logger for the classify step.
func WithClassifyLogger(logger *slog.Logger) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a new classification step.
func NewClassifyStep(opts ...ClassifyStepOption) *ClassifyStep {
	s := &ClassifyStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification step.
func (s *ClassifyStep) Do(_ context.Context, report *model.SiteReport) error {
	if report.Failed() {
		return nil
	}

	vulnerable := 0
	for _, tok := range report.Tokens {
		analyzer.Classify(tok)
		if tok.Verdict.IsVulnerable {
			vulnerable++
		}
	}
	s.logger.Debug("classified tokens",
		"site", report.Site,
		"tokens", len(report.Tokens),
		"vulnerable", vulnerable,
	)
	return nil
}

// SummarizeStep aggregates classified tokens into the site summary,
// including the Component Vulnerability Index and the ranked
// vulnerable-example list.
type SummarizeStep struct {
	topN   int
	logger *slog.Logger
}

// SummarizeStepOption configures a SummarizeStep.
type SummarizeStepOption func(*SummarizeStep)

// WithTopExamples sets how many ranked examples the summary keeps.
func WithTopExamples(n int) SummarizeStepOption {
	return func(s *SummarizeStep) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithSummarizeLogger sets a custom logger for the summarize step.
func WithSummarizeLogger(logger *slog.Logger) SummarizeStepOption {
	return func(s *SummarizeStep) {
		s.logger = logger
	}
}

// NewSummarizeStep creates a new aggregation step.
func NewSummarizeStep(opts ...SummarizeStepOption) *SummarizeStep {
	s := &SummarizeStep{
		topN:   analyzer.DefaultTopExamples,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the aggregation step.
func (s *SummarizeStep) Do(_ context.Context, report *model.SiteReport) error {
	if report.Failed() {
		return nil
	}

	report.Summary = analyzer.Aggregate(report, s.topN)
	if report.Summary.HasCVI() {
		s.logger.Info("site summarized",
			"site", report.Site,
			"cvi", *report.Summary.CVI,
			"risk", report.Summary.Risk.String(),
			"tokens", report.Summary.UniqueStyleGroups,
		)
	} else {
		s.logger.Info("site summarized with no measurable tokens", "site", report.Site)
	}
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// TopExamples bounds the ranked vulnerable-example list per site.
	TopExamples int
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineTopExamples sets the ranked-example bound for the
// default pipeline.
func WithPipelineTopExamples(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		if n > 0 {
			c.TopExamples = n
		}
	}
}

// DefaultPipeline creates a pipeline with the standard analysis steps
// in their canonical order: tokenize, contrast, classify, summarize.
//
// Design decision: We provide a default pipeline because most callers
// want the full analysis, it reduces boilerplate in the CLI, and it
// guarantees consistent step ordering.
func DefaultPipeline(sim simulate.Simulator, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		TopExamples: analyzer.DefaultTopExamples,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewTokenizeStep(),
		NewContrastStep(sim),
		NewClassifyStep(),
		NewSummarizeStep(WithTopExamples(cfg.TopExamples)),
	)

	return p
}
