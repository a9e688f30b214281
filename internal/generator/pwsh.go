package generator

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// pwshRenderer emits PowerShell dialect. PowerShell has no alias
// command that carries arguments, so aliases become wrapper functions
// forwarding @args; conditions are expressions, so every composite
// child is parenthesized.
type pwshRenderer struct{}

func (pwshRenderer) shell() manifest.ShellTarget { return manifest.Pwsh }

func (pwshRenderer) pathLine(path string) string {
	return fmt.Sprintf(`$env:PATH = "%s" + [IO.Path]::PathSeparator + $env:PATH`, path)
}

func (pwshRenderer) envLine(p manifest.Pair) string {
	return fmt.Sprintf(`$env:%s = "%s"`, p.Name, p.Value)
}

func (pwshRenderer) aliasLine(p manifest.Pair) string {
	return fmt.Sprintf("function %s { %s @args }", p.Name, p.Value)
}

func (pwshRenderer) toolLine(tool string) string {
	return fmt.Sprintf("Invoke-Expression (& %s init pwsh | Out-String)", tool)
}

func (pwshRenderer) evalLine(command string) string {
	return fmt.Sprintf("Invoke-Expression (& %s | Out-String)", command)
}

func (pwshRenderer) sourceFileLine(path string) string {
	return fmt.Sprintf(`if (Test-Path "%s") { . "%s" }`, path, path)
}

func (pwshRenderer) predicateFunction(name, description, expr string) string {
	lines := []string{
		Header,
		"# " + description,
		"function " + name + " {",
		"    " + expr,
		"}",
	}
	return strings.Join(lines, "\n") + "\n"
}

func (pwshRenderer) complexFunction(name, description, usage, body string) string {
	lines := []string{Header, "# " + description}
	if usage != "" {
		lines = append(lines, "# Usage: "+usage)
	}
	lines = append(lines, "", "function "+name+" {")
	lines = append(lines, indentLines(splitBody(body))...)
	lines = append(lines, "}")
	return strings.Join(lines, "\n") + "\n"
}

func (pwshRenderer) conditional(branches []conditionalBranch) []string {
	var out []string
	for i, b := range branches {
		switch {
		case i == 0:
			out = append(out, "if ("+b.condition+") {")
		case b.directive == manifest.DirectiveElse:
			out = append(out, "} else {")
		default:
			out = append(out, "} elseif ("+b.condition+") {")
		}
		out = append(out, indentLines(b.lines)...)
	}
	return append(out, "}")
}
