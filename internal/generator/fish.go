package generator

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// fishRenderer emits fish dialect. fish is the only target with a
// native PATH helper (fish_add_path) and job-style condition joins.
type fishRenderer struct{}

func (fishRenderer) shell() manifest.ShellTarget { return manifest.Fish }

func (fishRenderer) pathLine(path string) string {
	return "fish_add_path " + path
}

func (fishRenderer) envLine(p manifest.Pair) string {
	return fmt.Sprintf(`set -gx %s "%s"`, p.Name, p.Value)
}

func (fishRenderer) aliasLine(p manifest.Pair) string {
	return fmt.Sprintf("alias %s='%s'", p.Name, p.Value)
}

func (fishRenderer) toolLine(tool string) string {
	return tool + " init fish | source"
}

func (fishRenderer) evalLine(command string) string {
	return command + " | source"
}

func (fishRenderer) sourceFileLine(path string) string {
	return fmt.Sprintf("test -f %s; and source %s", path, path)
}

func (fishRenderer) predicateFunction(name, description, expr string) string {
	lines := []string{
		Header,
		"# " + description,
		fmt.Sprintf("function %s --description '%s'", name, description),
		"    " + expr,
		"end",
	}
	return strings.Join(lines, "\n") + "\n"
}

func (fishRenderer) complexFunction(name, description, usage, body string) string {
	lines := []string{Header, "# " + description}
	if usage != "" {
		lines = append(lines, "# Usage: "+usage)
	}
	lines = append(lines, "", "function "+name)
	lines = append(lines, indentLines(splitBody(body))...)
	lines = append(lines, "end")
	return strings.Join(lines, "\n") + "\n"
}

func (fishRenderer) conditional(branches []conditionalBranch) []string {
	var out []string
	for i, b := range branches {
		switch {
		case i == 0:
			out = append(out, "if "+b.condition)
		case b.directive == manifest.DirectiveElse:
			out = append(out, "else")
		default:
			out = append(out, "else if "+b.condition)
		}
		out = append(out, indentLines(b.lines)...)
	}
	return append(out, "end")
}
