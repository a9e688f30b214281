package service

import (
	"context"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/drift"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/generator"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
)

// CheckService validates manifest sources and compares the rendered
// output against what is on disk.
type CheckService struct {
	parser *manifest.Parser
	log    manifest.Logger
}

// NewCheckService creates a check service. A nil logger discards log
// output.
func NewCheckService(parser *manifest.Parser, log manifest.Logger) *CheckService {
	if log == nil {
		log = manifest.NopLogger()
	}
	return &CheckService{parser: parser, log: log}
}

// CheckRequest carries one check invocation.
type CheckRequest struct {
	Sources []string
	Layout  output.Layout
}

// CheckResult holds the drift report for a valid manifest.
type CheckResult struct {
	Manifest *manifest.Manifest
	Report   *drift.Report
}

// Execute performs the check operation. Manifest problems come back
// as the error with every finding collected; an in-sync report means
// the target needs no regeneration.
func (s *CheckService) Execute(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	// 1. Load and merge sources.
	m, err := s.parser.Load(ctx, req.Sources, s.log)
	if err != nil {
		return nil, err
	}

	// 2. Collect every manifest finding in one pass.
	if err := generator.Check(m); err != nil {
		return nil, err
	}

	// 3. Render the expected output and diff it against disk.
	out, err := generator.Generate(m)
	if err != nil {
		return nil, err
	}
	report, err := drift.Detect(out, req.Layout)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Manifest: m, Report: report}, nil
}
