package manifest

// ShellTarget identifies one of the four generated shell dialects.
// It is the key for every per-shell table lookup in the generator.
type ShellTarget string

// The four supported shell dialects, in canonical order.
const (
	Fish ShellTarget = "fish"
	Zsh  ShellTarget = "zsh"
	Bash ShellTarget = "bash"
	Pwsh ShellTarget = "pwsh"
)

// Targets returns the four shell targets in canonical order.
// The slice is freshly allocated; callers may modify it.
func Targets() []ShellTarget {
	return []ShellTarget{Fish, Zsh, Bash, Pwsh}
}

// IsValid reports whether s is one of the four supported targets.
func (s ShellTarget) IsValid() bool {
	switch s {
	case Fish, Zsh, Bash, Pwsh:
		return true
	}
	return false
}

func (s ShellTarget) String() string {
	return string(s)
}

// Manifest is the merged, ordered collection of function and module
// definitions loaded from one or more sources.
//
// A Manifest is constructed once per run by the loader and treated as
// immutable afterwards. Every derived artifact is recomputed from it
// on each generation, which keeps output deterministic.
type Manifest struct {
	// Functions in source order, after last-wins merge by name.
	Functions []FunctionSpec

	// Modules in source order, after last-wins merge by name.
	Modules []ModuleSpec
}

// FunctionSpec defines a standalone shell function. Exactly one of
// Predicate or Body must be set: predicate functions are one-line
// OS/architecture tests drawn from the predicate registry, complex
// functions carry their own body text.
type FunctionSpec struct {
	Name        string
	Description string

	// Usage is an optional invocation hint rendered as a comment.
	Usage string

	// Predicate names an entry in the predicate registry.
	Predicate string

	// Body holds the body variants of a complex function.
	Body *BodyVariant

	// Issues records problems found while decoding this entry.
	// Validate reports them; they never fail the parse itself.
	Issues []string
}

// ModuleSpec defines one startup module: a guarded unit of shell
// configuration written to a prefix-ordered file in each shell's
// modules directory.
type ModuleSpec struct {
	Name        string
	Description string

	// Prefix is exactly two ASCII digits and fixes the module's
	// lexicographic position in directory load order.
	Prefix string

	// URL and Comment render as extra comment lines after the
	// description.
	URL     string
	Comment string

	// Guard holds a single guard; Guards holds an ordered list that
	// renders one bail line per entry. Setting both is a validation
	// error.
	Guard  *Guard
	Guards []Guard

	// Body-type fields. At least one must be set. Render order is
	// fixed: paths, env, aliases, tool, eval_command, source_file,
	// conditional, body.
	Paths       []string
	Env         []Pair
	Aliases     []Pair
	Tool        string
	EvalCommand string
	SourceFiles []string
	Conditional []Branch
	Body        *BodyVariant

	Issues []string
}

// Branch is one arm of a module's conditional block. Branches carry
// the same body-type fields as modules except conditional itself;
// they do not nest.
type Branch struct {
	// Directive is "if", "elif" or "else". Empty means the source
	// carried no discriminant, which Validate rejects.
	Directive string

	// Guard is the branch condition. It is nil for else branches.
	Guard *Guard

	Paths       []string
	Env         []Pair
	Aliases     []Pair
	Tool        string
	EvalCommand string
	SourceFiles []string
	Body        *BodyVariant

	Issues []string
}

// Pair is one entry of an ordered name/value mapping (aliases, env).
type Pair struct {
	Name  string
	Value string
}

// BodyVariant holds the per-shell variants of a block of shell code.
// Either Bare is set (string shorthand applying to every shell) or
// Variants maps the keys fish, zsh, bash, pwsh, posix and shared to
// code text.
type BodyVariant struct {
	Bare   string
	IsBare bool

	Variants map[string]string

	// Unknown lists variant keys outside the recognized set, sorted.
	Unknown []string
}

// Guard is a boolean precondition gating a module or branch. It is a
// tagged union: exactly one of Atom, Not, All or Any is set. Invalid
// carries a decode-time problem for Validate to report.
type Guard struct {
	Atom *Atom
	Not  *Guard
	All  []Guard
	Any  []Guard

	Invalid string
}

// Atom is a single primitive check, such as command_exists or is_tty.
type Atom struct {
	// Kind names the check; see the Guard* constants.
	Kind string

	// Arg carries the parameter of one-argument kinds (a command
	// name, variable name or path).
	Arg string

	// Var and Value carry the parameters of the env comparison kinds.
	Var   string
	Value string

	// HasParam reports whether the source supplied any parameter.
	HasParam bool
}
