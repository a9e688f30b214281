package service

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/packages"
)

// PackagesService converts a package manifest into platform install
// files at the output root.
type PackagesService struct {
	log manifest.Logger
}

// NewPackagesService creates a packages service. A nil logger
// discards log output.
func NewPackagesService(log manifest.Logger) *PackagesService {
	if log == nil {
		log = manifest.NopLogger()
	}
	return &PackagesService{log: log}
}

// PackagesRequest carries one packages invocation.
type PackagesRequest struct {
	Source string // packages.yaml path; empty falls back to packages.DefaultSource
	Layout output.Layout
	DryRun bool
}

// PackagesResult reports what one packages invocation produced.
type PackagesResult struct {
	Manifest *packages.Manifest
	Written  []string
	Planned  []output.PlannedFile
}

// Execute performs the packages operation.
func (s *PackagesService) Execute(ctx context.Context, req PackagesRequest) (*PackagesResult, error) {
	source := req.Source
	if source == "" {
		source = packages.DefaultSource
	}

	// 1. Parse the package manifest.
	m, err := packages.ParseFile(source)
	if err != nil {
		return nil, err
	}
	files := packages.Files(m)

	result := &PackagesResult{Manifest: m}
	writer := output.NewWriter(req.Layout, s.log)

	// 2. Dry run stops at the plan.
	if req.DryRun {
		result.Planned = writer.PlanRootFiles(files)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled: %w", err)
	}

	// 3. Write under the output root lock.
	lock, err := output.AcquireLock(req.Layout.Root())
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	written, err := writer.WriteRootFiles(files)
	if err != nil {
		return nil, fmt.Errorf("write package files: %w", err)
	}
	result.Written = written
	return result, nil
}
