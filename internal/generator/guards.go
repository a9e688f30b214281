package generator

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// guardConditions maps each atomic guard kind to its per-shell
// condition template. %a is the single argument of one-argument
// kinds; %v and %w are the variable and value of the env comparison
// kinds. These strings are contractual output, not style.
var guardConditions = map[string]map[manifest.ShellTarget]string{
	manifest.GuardCommandExists: {
		manifest.Fish: "command -q %a",
		manifest.Zsh:  "(( $+commands[%a] ))",
		manifest.Bash: "command -v %a >/dev/null 2>&1",
		manifest.Pwsh: "Get-Command %a -ErrorAction SilentlyContinue",
	},
	manifest.GuardEnvNotSet: {
		manifest.Fish: "not set -q %a",
		manifest.Zsh:  "[[ -z $%a ]]",
		manifest.Bash: "[[ -z $%a ]]",
		manifest.Pwsh: "$null -eq $env:%a",
	},
	manifest.GuardEnvSet: {
		manifest.Fish: "set -q %a",
		manifest.Zsh:  "[[ -n $%a ]]",
		manifest.Bash: "[[ -n $%a ]]",
		manifest.Pwsh: "$null -ne $env:%a",
	},
	manifest.GuardEnvEquals: {
		manifest.Fish: `test "$%v" = "%w"`,
		manifest.Zsh:  `[[ "$%v" == "%w" ]]`,
		manifest.Bash: `[[ "$%v" == "%w" ]]`,
		manifest.Pwsh: `$env:%v -eq "%w"`,
	},
	manifest.GuardNotEnvEquals: {
		manifest.Fish: `test "$%v" != "%w"`,
		manifest.Zsh:  `[[ "$%v" != "%w" ]]`,
		manifest.Bash: `[[ "$%v" != "%w" ]]`,
		manifest.Pwsh: `$env:%v -ne "%w"`,
	},
	manifest.GuardFileExists: {
		manifest.Fish: "test -f %a",
		manifest.Zsh:  "[[ -f %a ]]",
		manifest.Bash: "[[ -f %a ]]",
		manifest.Pwsh: `Test-Path -PathType Leaf "%a"`,
	},
	manifest.GuardDirExists: {
		manifest.Fish: "test -d %a",
		manifest.Zsh:  "[[ -d %a ]]",
		manifest.Bash: "[[ -d %a ]]",
		manifest.Pwsh: `Test-Path -PathType Container "%a"`,
	},
	manifest.GuardIsTTY: {
		manifest.Fish: "isatty stdin",
		manifest.Zsh:  "[[ -t 0 ]]",
		manifest.Bash: "[[ -t 0 ]]",
		manifest.Pwsh: "-not [Console]::IsInputRedirected",
	},
	manifest.GuardIsInteractive: {
		manifest.Fish: "status is-interactive",
		manifest.Zsh:  "[[ -o interactive ]]",
		manifest.Bash: "[[ $- == *i* ]]",
		manifest.Pwsh: "[Environment]::UserInteractive",
	},
}

// guardSyntax holds the guard-kind-independent fragments of one
// shell: negation, join operators, composite grouping and the bail
// wrappers. The inverted bail backs a top-level not: guard, which
// flips the connector instead of negating the condition text.
type guardSyntax struct {
	negate        string
	negateGrouped string
	andJoin       string
	orJoin        string
	group         string
	groupChildren bool // parenthesize every join child, not just composites
	bail          string
	bailInverted  string
}

var guardSyntaxes = map[manifest.ShellTarget]guardSyntax{
	manifest.Fish: {
		negate:        "not %s",
		negateGrouped: "not begin; %s; end",
		andJoin:       "; and ",
		orJoin:        "; or ",
		group:         "begin; %s; end",
		bail:          "%s; or return 0",
		bailInverted:  "%s; and return 0",
	},
	manifest.Zsh: {
		negate:        "! %s",
		negateGrouped: "! { %s; }",
		andJoin:       " && ",
		orJoin:        " || ",
		group:         "{ %s; }",
		bail:          "%s || return 0",
		bailInverted:  "%s && return 0",
	},
	manifest.Bash: {
		negate:        "! %s",
		negateGrouped: "! { %s; }",
		andJoin:       " && ",
		orJoin:        " || ",
		group:         "{ %s; }",
		bail:          "%s || return 0",
		bailInverted:  "%s && return 0",
	},
	manifest.Pwsh: {
		negate:        "-not (%s)",
		negateGrouped: "-not (%s)",
		andJoin:       " -and ",
		orJoin:        " -or ",
		group:         "(%s)",
		groupChildren: true,
		bail:          "if (-not (%s)) { return }",
		bailInverted:  "if (%s) { return }",
	},
}

// conditionForm compiles a guard into the shell's raw boolean
// expression, suitable for conditional branches and for composition.
func conditionForm(g *manifest.Guard, sh manifest.ShellTarget) (string, error) {
	syn := guardSyntaxes[sh]
	switch {
	case g.Atom != nil:
		return atomCondition(g.Atom, sh)
	case g.Not != nil:
		inner, err := conditionForm(g.Not, sh)
		if err != nil {
			return "", err
		}
		if isComposite(g.Not) {
			return fmt.Sprintf(syn.negateGrouped, inner), nil
		}
		return fmt.Sprintf(syn.negate, inner), nil
	case g.All != nil:
		return joinConditions(g.All, syn.andJoin, sh)
	case g.Any != nil:
		return joinConditions(g.Any, syn.orJoin, sh)
	}
	return "", fmt.Errorf("empty guard")
}

// bailLine compiles a top-level guard into the shell's early-return
// line. Each entry of a guards: list is its own top level, so a
// leading not: on any of them inverts that line's connector.
func bailLine(g *manifest.Guard, sh manifest.ShellTarget) (string, error) {
	syn := guardSyntaxes[sh]
	if g.Not != nil {
		cond, err := conditionForm(g.Not, sh)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(syn.bailInverted, cond), nil
	}
	cond, err := conditionForm(g, sh)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(syn.bail, cond), nil
}

func atomCondition(a *manifest.Atom, sh manifest.ShellTarget) (string, error) {
	perShell, ok := guardConditions[a.Kind]
	if !ok {
		return "", fmt.Errorf("unknown guard kind %q", a.Kind)
	}
	r := strings.NewReplacer("%a", a.Arg, "%v", a.Var, "%w", a.Value)
	return r.Replace(perShell[sh]), nil
}

func joinConditions(children []manifest.Guard, op string, sh manifest.ShellTarget) (string, error) {
	syn := guardSyntaxes[sh]
	parts := make([]string, 0, len(children))
	for i := range children {
		child := &children[i]
		cond, err := conditionForm(child, sh)
		if err != nil {
			return "", err
		}
		if syn.groupChildren || isComposite(child) {
			cond = fmt.Sprintf(syn.group, cond)
		}
		parts = append(parts, cond)
	}
	return strings.Join(parts, op), nil
}

// isComposite reports whether a guard renders as a join, which must
// be grouped when nested inside another expression.
func isComposite(g *manifest.Guard) bool {
	return g.All != nil || g.Any != nil
}
