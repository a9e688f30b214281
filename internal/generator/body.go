package generator

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// resolveBody picks the text of a body variant for one shell. The
// precedence is fixed: bare string, exact shell key, posix (zsh and
// bash only; fish and pwsh never take it), shared. The second return
// is false when the precedence chain is exhausted.
func resolveBody(v *manifest.BodyVariant, sh manifest.ShellTarget) (string, bool) {
	if v.IsBare {
		return v.Bare, true
	}
	if text, ok := v.Variants[string(sh)]; ok {
		return text, true
	}
	if sh == manifest.Zsh || sh == manifest.Bash {
		if text, ok := v.Variants[manifest.VariantPosix]; ok {
			return text, true
		}
	}
	if text, ok := v.Variants[manifest.VariantShared]; ok {
		return text, true
	}
	return "", false
}

// RenderError reports a body variant that cannot serve one of the
// four shells. Check finds every instance up front so that a run
// never renders a partial output set.
type RenderError struct {
	Kind  string // "function", "module" or "branch"
	Name  string // owning entry's name
	Shell manifest.ShellTarget
}

func (e *RenderError) Error() string {
	if e.Kind == "branch" {
		return fmt.Sprintf("module '%s': conditional branch has no body text for %s", e.Name, e.Shell)
	}
	return fmt.Sprintf("%s '%s': no body text for %s", e.Kind, e.Name, e.Shell)
}
