package generator

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// bashRenderer emits bash dialect. It tracks zsh for POSIX-flavored
// constructs but wraps functions in name() { } syntax and uses its
// own interactivity and command checks.
type bashRenderer struct{}

func (bashRenderer) shell() manifest.ShellTarget { return manifest.Bash }

func (bashRenderer) pathLine(path string) string {
	return fmt.Sprintf(`export PATH="%s:$PATH"`, path)
}

func (bashRenderer) envLine(p manifest.Pair) string {
	return fmt.Sprintf(`export %s="%s"`, p.Name, p.Value)
}

func (bashRenderer) aliasLine(p manifest.Pair) string {
	return fmt.Sprintf(`alias %s="%s"`, p.Name, p.Value)
}

func (bashRenderer) toolLine(tool string) string {
	return fmt.Sprintf(`eval "$(%s init bash)"`, tool)
}

func (bashRenderer) evalLine(command string) string {
	return fmt.Sprintf(`eval "$(%s)"`, command)
}

func (bashRenderer) sourceFileLine(path string) string {
	return fmt.Sprintf("[[ -f %s ]] && source %s", path, path)
}

func (bashRenderer) predicateFunction(name, description, expr string) string {
	lines := []string{
		Header,
		"# " + description,
		name + "() {",
		"    " + expr,
		"}",
	}
	return strings.Join(lines, "\n") + "\n"
}

func (bashRenderer) complexFunction(name, description, usage, body string) string {
	lines := []string{Header, "# " + description}
	if usage != "" {
		lines = append(lines, "# Usage: "+usage)
	}
	lines = append(lines, "", name+"() {")
	lines = append(lines, indentLines(splitBody(body))...)
	lines = append(lines, "}")
	return strings.Join(lines, "\n") + "\n"
}

func (bashRenderer) conditional(branches []conditionalBranch) []string {
	return posixConditional(branches)
}
