package manifest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSource is the manifest path used when a command is invoked
// with no sources at all, relative to the working directory.
const DefaultSource = ".shellgen/shell.yaml"

// ResolveSources maps raw source arguments to concrete manifest file
// paths, preserving order:
//
//   - an existing file is used as-is
//   - a directory is searched for shell.yaml, then shell.lua
//   - anything else is skipped with a warning
//
// A leading "~/" expands against the home directory. The returned
// slice may be shorter than the input; it is never reordered.
func ResolveSources(raw []string, log Logger) []string {
	log = orNopLogger(log)

	resolved := make([]string, 0, len(raw))
	for _, arg := range raw {
		path := expandTilde(arg)
		info, err := os.Stat(path)
		if err != nil {
			log.Warnf("skipping %s: not found", arg)
			continue
		}
		if !info.IsDir() {
			resolved = append(resolved, path)
			continue
		}
		found := ""
		for _, name := range defaultSourceNames {
			candidate := filepath.Join(path, name)
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				found = candidate
				break
			}
		}
		if found == "" {
			log.Warnf("skipping %s: no shell.yaml or shell.lua inside", arg)
			continue
		}
		resolved = append(resolved, found)
	}
	return resolved
}

// ReadSourceList reads newline-separated source paths, one per line.
// Blank lines and surrounding whitespace are dropped. This backs the
// --stdin flag; the returned paths go before any positional ones.
func ReadSourceList(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source list: %w", err)
	}
	return paths, nil
}

// Merge overlays extra onto base. An entry whose name matches an
// earlier one replaces it in place, so later sources win while the
// first definition keeps its position in load order. Entries without
// a name never merge; they are carried through for Validate to
// reject. Neither input is modified.
func Merge(base, extra *Manifest) *Manifest {
	out := &Manifest{
		Functions: make([]FunctionSpec, len(base.Functions), len(base.Functions)+len(extra.Functions)),
		Modules:   make([]ModuleSpec, len(base.Modules), len(base.Modules)+len(extra.Modules)),
	}
	copy(out.Functions, base.Functions)
	copy(out.Modules, base.Modules)

	fnAt := make(map[string]int, len(out.Functions))
	for i, f := range out.Functions {
		if f.Name != "" {
			fnAt[f.Name] = i
		}
	}
	for _, f := range extra.Functions {
		if f.Name != "" {
			if at, ok := fnAt[f.Name]; ok {
				out.Functions[at] = f
				continue
			}
			fnAt[f.Name] = len(out.Functions)
		}
		out.Functions = append(out.Functions, f)
	}

	modAt := make(map[string]int, len(out.Modules))
	for i, m := range out.Modules {
		if m.Name != "" {
			modAt[m.Name] = i
		}
	}
	for _, m := range extra.Modules {
		if m.Name != "" {
			if at, ok := modAt[m.Name]; ok {
				out.Modules[at] = m
				continue
			}
			modAt[m.Name] = len(out.Modules)
		}
		out.Modules = append(out.Modules, m)
	}

	return out
}

// Load resolves raw source arguments, parses every resolved source
// and merges them in order. With no arguments it falls back to
// DefaultSource. At least one source must resolve, and every resolved
// source must parse; entry-level problems are left for Validate.
func (p *Parser) Load(ctx context.Context, raw []string, log Logger) (*Manifest, error) {
	log = orNopLogger(log)
	if len(raw) == 0 {
		raw = []string{DefaultSource}
	}

	sources := ResolveSources(raw, log)
	if len(sources) == 0 {
		return nil, fmt.Errorf("no usable manifest sources (checked %d)", len(raw))
	}

	merged := &Manifest{}
	for _, src := range sources {
		log.Debugf("loading %s", src)
		m, err := p.ParseFile(ctx, src)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, m)
	}
	log.Infof("loaded %d source(s): %d function(s), %d module(s)",
		len(sources), len(merged.Functions), len(merged.Modules))
	return merged, nil
}

// expandTilde rewrites a leading "~/" against the home directory.
// Expansion failures leave the path untouched so the caller's Stat
// produces the warning.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
