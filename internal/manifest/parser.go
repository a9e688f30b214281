package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/platform"
)

// Parser turns manifest sources into Manifest values.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a manifest parser. The detector supplies the
// platform table injected into Lua sources; it may be nil, in which
// case Lua manifests run without one.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseFile parses a single manifest source, dispatching on the file
// extension: .lua sources run in the Lua sandbox, everything else is
// decoded as YAML.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: "cannot read manifest",
			Detail:  err.Error(),
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return p.ParseLua(ctx, string(data), path)
	}
	return p.ParseYAML(data, path)
}

// ParseError reports a manifest source that could not be decoded at
// all. Problems inside individual entries are collected by Validate
// instead.
type ParseError struct {
	Path    string // source path, empty for in-memory input
	Message string // user-facing message
	Detail  string // technical detail (raw YAML or Lua error)
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FormatError renders a parse error for terminal display. Verbose
// mode keeps the full detail; otherwise Lua stack tracebacks are
// trimmed to the first relevant line.
func FormatError(err error, verbose bool) string {
	parseErr, ok := err.(*ParseError)
	if !ok {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
	}
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	if parseErr.Path != "" {
		return fmt.Sprintf("%s: %s: %s", parseErr.Path, parseErr.Message, detail)
	}
	return fmt.Sprintf("%s: %s", parseErr.Message, detail)
}
