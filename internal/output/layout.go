// Package output writes generated files to disk. It knows two
// layouts (real config directories and chezmoi source state), keeps a
// per-directory .gitignore roster of what it generated, and holds an
// exclusive lock on the output root while writing.
package output

import (
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/chezmoi"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// shellDirs names each shell's directory under an output root. The
// pwsh target uses the conventional "powershell" directory name.
var shellDirs = map[manifest.ShellTarget]string{
	manifest.Fish: "fish",
	manifest.Zsh:  "zsh",
	manifest.Bash: "bash",
	manifest.Pwsh: "powershell",
}

// Layout resolves where generated files land on disk.
type Layout struct {
	root    string
	chezmoi bool
}

// Plain lays files out as real configuration under targetDir:
// targetDir/<shell>/<rel>, dotted names kept as-is.
func Plain(targetDir string) Layout {
	return Layout{root: targetDir}
}

// Chezmoi lays files out as chezmoi source state under sourceDir:
// sourceDir/dot_config/<shell>/<rel>, every dotted path segment
// encoded with the dot_ source-state prefix.
func Chezmoi(sourceDir string) Layout {
	return Layout{root: sourceDir, chezmoi: true}
}

// Root returns the directory the layout writes under. The lock file
// lives here.
func (l Layout) Root() string {
	return l.root
}

// IsChezmoi reports whether the layout writes chezmoi source state.
func (l Layout) IsChezmoi() bool {
	return l.chezmoi
}

// FilePath maps one generated file, identified by its shell target
// and root-relative slash path, to its absolute on-disk location.
func (l Layout) FilePath(sh manifest.ShellTarget, rel string) string {
	if l.chezmoi {
		return filepath.Join(l.root, "dot_config", shellDirs[sh], filepath.FromSlash(chezmoi.SourceName(rel)))
	}
	return filepath.Join(l.root, shellDirs[sh], filepath.FromSlash(rel))
}

// RootFile maps a file that sits directly at the output root, such as
// a generated package list.
func (l Layout) RootFile(name string) string {
	if l.chezmoi {
		return filepath.Join(l.root, "dot_config", filepath.FromSlash(chezmoi.SourceName(name)))
	}
	return filepath.Join(l.root, name)
}
