package generator

import (
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// Header is the first line of every generated file. The writer also
// places it at the top of the .gitignore it maintains per directory.
const Header = "# Generated by shellgen -- DO NOT EDIT"

// renderer is the per-shell rendering contract: one method per
// generated construct. A new body type becomes a new method here,
// which will not compile until all four dialects implement it.
type renderer interface {
	shell() manifest.ShellTarget

	// One-line body emitters, one call per manifest entry.
	pathLine(path string) string
	envLine(p manifest.Pair) string
	aliasLine(p manifest.Pair) string
	toolLine(tool string) string
	evalLine(command string) string
	sourceFileLine(path string) string

	// predicateFunction renders a complete function file whose body
	// is the predicate's condition form.
	predicateFunction(name, description, expr string) string

	// complexFunction renders a complete function file around
	// resolved body text.
	complexFunction(name, description, usage, body string) string

	// conditional renders an if/elif/else chain. Branch body lines
	// arrive unindented; the dialect owns keywords and indentation.
	conditional(branches []conditionalBranch) []string
}

// conditionalBranch is one compiled arm of a conditional block.
type conditionalBranch struct {
	directive string // "if", "elif" or "else"
	condition string // condition form; empty for else
	lines     []string
}

func rendererFor(sh manifest.ShellTarget) renderer {
	switch sh {
	case manifest.Fish:
		return fishRenderer{}
	case manifest.Zsh:
		return zshRenderer{}
	case manifest.Bash:
		return bashRenderer{}
	default:
		return pwshRenderer{}
	}
}

// renderFunction renders one function file for the renderer's shell.
func renderFunction(r renderer, f *manifest.FunctionSpec) (string, error) {
	if f.Predicate != "" {
		expr, err := predicateCondition(f.Predicate, r.shell())
		if err != nil {
			return "", err
		}
		return r.predicateFunction(f.Name, f.Description, expr), nil
	}
	text, ok := resolveBody(f.Body, r.shell())
	if !ok {
		return "", &RenderError{Kind: "function", Name: f.Name, Shell: r.shell()}
	}
	return r.complexFunction(f.Name, f.Description, f.Usage, text), nil
}

// renderModule renders one module file: header comments, bail guard
// lines, then the body-type groups in fixed order separated by single
// blank lines.
func renderModule(r renderer, m *manifest.ModuleSpec) (string, error) {
	sh := r.shell()
	lines := make([]string, 0, 16)
	lines = append(lines, Header, "# "+m.Description)
	if m.URL != "" {
		lines = append(lines, "# "+m.URL)
	}
	if m.Comment != "" {
		lines = append(lines, "# "+m.Comment)
	}
	lines = append(lines, "")

	var bails []string
	if m.Guard != nil {
		line, err := bailLine(m.Guard, sh)
		if err != nil {
			return "", err
		}
		bails = append(bails, line)
	}
	for i := range m.Guards {
		line, err := bailLine(&m.Guards[i], sh)
		if err != nil {
			return "", err
		}
		bails = append(bails, line)
	}
	if len(bails) > 0 {
		lines = append(lines, bails...)
		lines = append(lines, "")
	}

	groups, err := renderBodyGroups(r, moduleFields(m), "module", m.Name, commandToken(m))
	if err != nil {
		return "", err
	}
	for i, group := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, group...)
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// bodyFields is the body-type field view shared by modules and
// branches. Conditional is nil for branches, which do not nest.
type bodyFields struct {
	paths       []string
	env         []manifest.Pair
	aliases     []manifest.Pair
	tool        string
	evalCommand string
	sourceFiles []string
	conditional []manifest.Branch
	body        *manifest.BodyVariant
}

func moduleFields(m *manifest.ModuleSpec) bodyFields {
	return bodyFields{
		paths: m.Paths, env: m.Env, aliases: m.Aliases,
		tool: m.Tool, evalCommand: m.EvalCommand,
		sourceFiles: m.SourceFiles, conditional: m.Conditional,
		body: m.Body,
	}
}

func branchFields(b *manifest.Branch) bodyFields {
	return bodyFields{
		paths: b.Paths, env: b.Env, aliases: b.Aliases,
		tool: b.Tool, evalCommand: b.EvalCommand,
		sourceFiles: b.SourceFiles, body: b.Body,
	}
}

// renderBodyGroups renders the populated body-type fields in the
// fixed order paths, env, aliases, tool, eval_command, source_file,
// conditional, body. Each group is a slice of generated lines; the
// caller decides how groups are separated.
func renderBodyGroups(r renderer, f bodyFields, entity, name, command string) ([][]string, error) {
	sh := r.shell()
	var groups [][]string

	if len(f.paths) > 0 {
		group := make([]string, 0, len(f.paths))
		for _, p := range f.paths {
			group = append(group, r.pathLine(p))
		}
		groups = append(groups, group)
	}
	if len(f.env) > 0 {
		group := make([]string, 0, len(f.env))
		for _, p := range f.env {
			group = append(group, r.envLine(p))
		}
		groups = append(groups, group)
	}
	if len(f.aliases) > 0 {
		group := make([]string, 0, len(f.aliases))
		for _, p := range f.aliases {
			group = append(group, r.aliasLine(p))
		}
		groups = append(groups, group)
	}
	if f.tool != "" {
		groups = append(groups, []string{r.toolLine(substituteTokens(f.tool, sh, command))})
	}
	if f.evalCommand != "" {
		groups = append(groups, []string{r.evalLine(substituteTokens(f.evalCommand, sh, command))})
	}
	if len(f.sourceFiles) > 0 {
		group := make([]string, 0, len(f.sourceFiles))
		for _, p := range f.sourceFiles {
			group = append(group, r.sourceFileLine(p))
		}
		groups = append(groups, group)
	}
	if len(f.conditional) > 0 {
		block, err := renderConditional(r, f.conditional, name, command)
		if err != nil {
			return nil, err
		}
		groups = append(groups, block)
	}
	if f.body != nil {
		text, ok := resolveBody(f.body, sh)
		if !ok {
			return nil, &RenderError{Kind: entity, Name: name, Shell: sh}
		}
		if body := splitBody(text); len(body) > 0 {
			groups = append(groups, body)
		}
	}

	return groups, nil
}

// renderConditional compiles a branch chain into one conditional
// block. Branch bodies render with the same emitters as modules,
// without bail lines, and are flattened without group separators.
func renderConditional(r renderer, branches []manifest.Branch, name, command string) ([]string, error) {
	compiled := make([]conditionalBranch, 0, len(branches))
	for i := range branches {
		b := &branches[i]
		cb := conditionalBranch{directive: b.Directive}
		if b.Guard != nil {
			cond, err := conditionForm(b.Guard, r.shell())
			if err != nil {
				return nil, err
			}
			cb.condition = cond
		}

		branchCommand := command
		if b.Tool != "" {
			branchCommand = b.Tool
		}
		groups, err := renderBodyGroups(r, branchFields(b), "branch", name, branchCommand)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			cb.lines = append(cb.lines, group...)
		}
		compiled = append(compiled, cb)
	}
	return r.conditional(compiled), nil
}

// substituteTokens expands the {shell} and {command} placeholders in
// tool and eval_command values. All other brace text passes through
// verbatim.
func substituteTokens(s string, sh manifest.ShellTarget, command string) string {
	s = strings.ReplaceAll(s, "{shell}", string(sh))
	s = strings.ReplaceAll(s, "{command}", command)
	return s
}

// commandToken resolves what {command} stands for in a module: the
// tool value if set, else the module name.
func commandToken(m *manifest.ModuleSpec) string {
	if m.Tool != "" {
		return m.Tool
	}
	return m.Name
}

// splitBody turns resolved body text into lines, dropping trailing
// newlines so every file ends with exactly one.
func splitBody(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// indentLines prefixes each non-empty line with one 4-space level.
// Blank lines stay empty so no line carries trailing whitespace.
func indentLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = ""
			continue
		}
		out[i] = "    " + line
	}
	return out
}

// posixConditional is the if/elif/else shape shared by zsh and bash.
func posixConditional(branches []conditionalBranch) []string {
	var out []string
	for i, b := range branches {
		switch {
		case i == 0:
			out = append(out, "if "+b.condition+"; then")
		case b.directive == manifest.DirectiveElse:
			out = append(out, "else")
		default:
			out = append(out, "elif "+b.condition+"; then")
		}
		out = append(out, indentLines(b.lines)...)
	}
	return append(out, "fi")
}
