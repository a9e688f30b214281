package generator

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// zshRenderer emits zsh dialect. Function files follow the autoload
// convention: the bare body with no wrapper, because the filename
// supplies the function name.
type zshRenderer struct{}

func (zshRenderer) shell() manifest.ShellTarget { return manifest.Zsh }

func (zshRenderer) pathLine(path string) string {
	return fmt.Sprintf(`export PATH="%s:$PATH"`, path)
}

func (zshRenderer) envLine(p manifest.Pair) string {
	return fmt.Sprintf(`export %s="%s"`, p.Name, p.Value)
}

func (zshRenderer) aliasLine(p manifest.Pair) string {
	return fmt.Sprintf(`alias %s="%s"`, p.Name, p.Value)
}

func (zshRenderer) toolLine(tool string) string {
	return fmt.Sprintf(`eval "$(%s init zsh)"`, tool)
}

func (zshRenderer) evalLine(command string) string {
	return fmt.Sprintf(`eval "$(%s)"`, command)
}

func (zshRenderer) sourceFileLine(path string) string {
	return fmt.Sprintf("[[ -f %s ]] && source %s", path, path)
}

func (zshRenderer) predicateFunction(name, description, expr string) string {
	lines := []string{Header, "", expr}
	return strings.Join(lines, "\n") + "\n"
}

func (zshRenderer) complexFunction(name, description, usage, body string) string {
	lines := []string{Header, "# " + description}
	if usage != "" {
		lines = append(lines, "# Usage: "+usage)
	}
	lines = append(lines, "")
	lines = append(lines, splitBody(body)...)
	return strings.Join(lines, "\n") + "\n"
}

func (zshRenderer) conditional(branches []conditionalBranch) []string {
	return posixConditional(branches)
}
