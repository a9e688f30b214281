// Package service wires manifest loading, generation and the output
// layer into the operations the CLI exposes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/generator"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
)

// Applier pushes written chezmoi source state out to the home
// directory. *chezmoi.Client implements it.
type Applier interface {
	Apply(ctx context.Context) error
}

// GenerateService loads manifest sources, renders every shell's
// startup files and writes them through the output layer.
type GenerateService struct {
	parser *manifest.Parser
	log    manifest.Logger
}

// NewGenerateService creates a generate service. A nil logger
// discards log output.
func NewGenerateService(parser *manifest.Parser, log manifest.Logger) *GenerateService {
	if log == nil {
		log = manifest.NopLogger()
	}
	return &GenerateService{parser: parser, log: log}
}

// GenerateRequest carries one generate invocation.
type GenerateRequest struct {
	Sources []string // raw source arguments; empty falls back to the default source
	Layout  output.Layout
	DryRun  bool
	Applier Applier // non-nil: run after a successful write; requires the chezmoi layout
}

// GenerateResult reports what one generate invocation produced.
type GenerateResult struct {
	Manifest *manifest.Manifest
	Written  []string             // absolute paths, write mode
	Planned  []output.PlannedFile // dry-run mode
	Applied  bool
}

// Execute performs the generate operation.
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Applier != nil && !req.Layout.IsChezmoi() {
		return nil, errors.New("apply requires the chezmoi layout")
	}

	// 1. Load and merge sources.
	m, err := s.parser.Load(ctx, req.Sources, s.log)
	if err != nil {
		return nil, err
	}

	// 2. Render everything. Validation failures abort before any I/O.
	out, err := generator.Generate(m)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Manifest: m}
	writer := output.NewWriter(req.Layout, s.log)

	// 3. Dry run stops at the plan.
	if req.DryRun {
		result.Planned = writer.Plan(out)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled: %w", err)
	}

	// 4. Hold the output root lock for the whole write.
	lock, err := output.AcquireLock(req.Layout.Root())
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	written, err := writer.Write(out)
	if err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	result.Written = written

	// 5. Hand off to chezmoi when asked.
	if req.Applier != nil {
		if err := req.Applier.Apply(ctx); err != nil {
			return nil, err
		}
		result.Applied = true
	}

	return result, nil
}
