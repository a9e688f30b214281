package drift

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/generator"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
)

// Detect classifies every file the output map would generate, plus
// every file still listed in a managed directory's .gitignore roster.
// Orphans are only reported while the file actually exists; a roster
// entry whose file is already gone needs no action.
func Detect(expected generator.Output, layout output.Layout) (*Report, error) {
	report := &Report{}
	expectedPaths := make(map[string]bool)
	var dirs []string
	seenDir := make(map[string]bool)

	for _, sh := range manifest.Targets() {
		files := expected[sh]
		rels := make([]string, 0, len(files))
		for rel := range files {
			rels = append(rels, rel)
		}
		sort.Strings(rels)

		for _, rel := range rels {
			abs := layout.FilePath(sh, rel)
			expectedPaths[abs] = true

			dir := filepath.Dir(abs)
			if !seenDir[dir] {
				seenDir[dir] = true
				dirs = append(dirs, dir)
			}

			state, err := classify(abs, files[rel])
			if err != nil {
				return nil, err
			}
			report.Findings = append(report.Findings, Finding{Path: abs, State: state})
		}
	}

	// Rosters also pin the .gitignore files themselves.
	sort.Strings(dirs)
	for _, dir := range dirs {
		gitignore := filepath.Join(dir, output.GitignoreName)
		data, err := os.ReadFile(gitignore)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", gitignore, err)
		}
		roster, managed := output.ParseRoster(string(data))
		if !managed {
			continue
		}
		for _, name := range roster {
			p := filepath.Join(dir, name)
			if expectedPaths[p] {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("stat %s: %w", p, err)
			}
			report.Findings = append(report.Findings, Finding{Path: p, State: Orphan})
		}
	}

	return report, nil
}

// classify compares one expected file against disk.
func classify(path, want string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Missing, nil
		}
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if string(data) != want {
		return Stale, nil
	}
	return InSync, nil
}
