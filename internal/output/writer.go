package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/generator"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// GitignoreName is the roster file the writer maintains in every
// directory it generates into.
const GitignoreName = ".gitignore"

// Writer materializes an Output map through a Layout.
type Writer struct {
	layout Layout
	log    manifest.Logger
}

func NewWriter(layout Layout, log manifest.Logger) *Writer {
	if log == nil {
		log = manifest.NopLogger()
	}
	return &Writer{layout: layout, log: log}
}

// PlannedFile is one entry of a dry run: where a file would go and
// how many bytes it would hold.
type PlannedFile struct {
	Path string
	Size int
}

// fileEntry pairs an absolute destination with its content.
type fileEntry struct {
	path    string
	content string
}

// enumerate lists every file a write would touch, in deterministic
// order: shell targets in fixed order, paths sorted within each, then
// one .gitignore per receiving directory.
func (w *Writer) enumerate(out generator.Output) []fileEntry {
	var entries []fileEntry
	rosters := make(map[string][]string)

	for _, sh := range manifest.Targets() {
		files := out[sh]
		rels := make([]string, 0, len(files))
		for rel := range files {
			rels = append(rels, rel)
		}
		sort.Strings(rels)
		for _, rel := range rels {
			abs := w.layout.FilePath(sh, rel)
			entries = append(entries, fileEntry{path: abs, content: files[rel]})
			dir := filepath.Dir(abs)
			rosters[dir] = append(rosters[dir], filepath.Base(abs))
		}
	}

	dirs := make([]string, 0, len(rosters))
	for dir := range rosters {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		names := rosters[dir]
		sort.Strings(names)
		entries = append(entries, fileEntry{
			path:    filepath.Join(dir, GitignoreName),
			content: RosterBody(names),
		})
	}
	return entries
}

// Write creates directories (0755) and files (0644), each file
// written to a temp name and renamed into place. It returns the
// absolute paths it wrote, .gitignore rosters included.
func (w *Writer) Write(out generator.Output) ([]string, error) {
	entries := w.enumerate(out)
	written := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := writeFileAtomic(e.path, []byte(e.content)); err != nil {
			return written, err
		}
		w.log.Debugf("wrote %s", e.path)
		written = append(written, e.path)
	}
	w.log.Infof("wrote %d files under %s", len(written), w.layout.Root())
	return written, nil
}

// Plan reports what Write would do without touching the filesystem.
func (w *Writer) Plan(out generator.Output) []PlannedFile {
	entries := w.enumerate(out)
	plan := make([]PlannedFile, len(entries))
	for i, e := range entries {
		plan[i] = PlannedFile{Path: e.path, Size: len(e.content)}
	}
	return plan
}

// WriteRootFiles writes extra files directly under the output root
// through the layout, maintaining no roster. Package lists use this.
func (w *Writer) WriteRootFiles(files map[string]string) ([]string, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		abs := w.layout.RootFile(name)
		if err := writeFileAtomic(abs, []byte(files[name])); err != nil {
			return written, err
		}
		w.log.Debugf("wrote %s", abs)
		written = append(written, abs)
	}
	return written, nil
}

// PlanRootFiles is the dry-run counterpart of WriteRootFiles.
func (w *Writer) PlanRootFiles(files map[string]string) []PlannedFile {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	plan := make([]PlannedFile, len(names))
	for i, name := range names {
		plan[i] = PlannedFile{Path: w.layout.RootFile(name), Size: len(files[name])}
	}
	return plan
}

// RosterBody renders a managed .gitignore: the generated-file header
// followed by one filename per line.
func RosterBody(names []string) string {
	var b strings.Builder
	b.WriteString(generator.Header)
	b.WriteByte('\n')
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseRoster extracts the filename roster from .gitignore content.
// ok is false when the file does not carry the generated-file header,
// meaning shellgen does not manage that directory.
func ParseRoster(content string) (names []string, ok bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || lines[0] != generator.Header {
		return nil, false
	}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, true
}

// writeFileAtomic writes data to a temp file in the destination
// directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
