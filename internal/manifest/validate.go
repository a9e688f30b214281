package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidationError is a single finding from Validate. Kind is
// "function" or "module"; Name is the entry's name, with Index as the
// zero-based fallback position when the name itself is missing.
type ValidationError struct {
	Kind    string
	Name    string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%ss[%d]: %s", e.Kind, e.Index, e.Message)
	}
	return fmt.Sprintf("%s '%s': %s", e.Kind, e.Name, e.Message)
}

// ValidationErrors is the ordered collection of every finding across
// a manifest. Validate never stops at the first problem; a run either
// generates everything or reports everything.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// entityName restricts function and module names to characters that
// are safe in generated file names: no separators, no leading dot.
var entityName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// Atomic guard kinds grouped by parameter shape.
var (
	argGuardKinds = map[string]bool{
		GuardCommandExists: true,
		GuardEnvNotSet:     true,
		GuardEnvSet:        true,
		GuardFileExists:    true,
		GuardDirExists:     true,
	}
	pairGuardKinds = map[string]bool{
		GuardEnvEquals:    true,
		GuardNotEnvEquals: true,
	}
	bareGuardKinds = map[string]bool{
		GuardIsTTY:         true,
		GuardIsInteractive: true,
	}
)

var knownPredicates = map[string]bool{
	PredicateOSIsDarwin:  true,
	PredicateOSIsLinux:   true,
	PredicateOSIsWindows: true,
	PredicateArchIsARM64: true,
	PredicateArchIsAMD64: true,
}

// KnownGuardKinds returns every atomic guard kind, sorted.
func KnownGuardKinds() []string {
	kinds := make([]string, 0, len(argGuardKinds)+len(pairGuardKinds)+len(bareGuardKinds))
	for k := range argGuardKinds {
		kinds = append(kinds, k)
	}
	for k := range pairGuardKinds {
		kinds = append(kinds, k)
	}
	for k := range bareGuardKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// KnownPredicates returns every recognized predicate name, sorted.
func KnownPredicates() []string {
	names := make([]string, 0, len(knownPredicates))
	for n := range knownPredicates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks a manifest for structural problems and collects
// every finding. A nil or empty result means the manifest is ready
// for generation. Decode-time issues recorded on entries surface
// here, never as parse errors: a syntactically well-formed source
// always yields a complete report.
func Validate(m *Manifest) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]bool, len(m.Functions))
	for i := range m.Functions {
		validateFunction(&m.Functions[i], i, seen, &errs)
	}

	seen = make(map[string]bool, len(m.Modules))
	for i := range m.Modules {
		validateModule(&m.Modules[i], i, seen, &errs)
	}

	return errs
}

func validateFunction(f *FunctionSpec, index int, seen map[string]bool, errs *ValidationErrors) {
	report := func(msg string) {
		*errs = append(*errs, &ValidationError{Kind: "function", Name: f.Name, Index: index, Message: msg})
	}

	for _, issue := range f.Issues {
		report(issue)
	}

	switch {
	case f.Name == "":
		report("missing required field 'name'")
	case !entityName.MatchString(f.Name):
		report(fmt.Sprintf("invalid name %q: letters, digits, '.', '_' and '-' only", f.Name))
	case seen[f.Name]:
		report("defined more than once")
	default:
		seen[f.Name] = true
	}

	if f.Description == "" {
		report("missing required field 'description'")
	}
	reportMultiline(f.Description, "description", report)
	reportMultiline(f.Usage, "usage", report)

	hasPredicate := f.Predicate != ""
	hasBody := f.Body != nil
	switch {
	case hasPredicate && hasBody:
		report("'predicate' and 'body' are mutually exclusive")
	case !hasPredicate && !hasBody:
		report("needs either 'predicate' or 'body'")
	}

	if hasPredicate && !knownPredicates[f.Predicate] {
		report(fmt.Sprintf("unknown predicate '%s' (known: %s)",
			f.Predicate, strings.Join(KnownPredicates(), ", ")))
	}
	if hasBody {
		validateBodyVariant(f.Body, "body", report)
	}
}

func validateModule(m *ModuleSpec, index int, seen map[string]bool, errs *ValidationErrors) {
	report := func(msg string) {
		*errs = append(*errs, &ValidationError{Kind: "module", Name: m.Name, Index: index, Message: msg})
	}

	for _, issue := range m.Issues {
		report(issue)
	}

	switch {
	case m.Name == "":
		report("missing required field 'name'")
	case !entityName.MatchString(m.Name):
		report(fmt.Sprintf("invalid name %q: letters, digits, '.', '_' and '-' only", m.Name))
	case seen[m.Name]:
		report("defined more than once")
	default:
		seen[m.Name] = true
	}

	if m.Description == "" {
		report("missing required field 'description'")
	}
	reportMultiline(m.Description, "description", report)
	reportMultiline(m.URL, "url", report)
	reportMultiline(m.Comment, "comment", report)

	switch {
	case m.Prefix == "":
		report("missing required field 'prefix'")
	case !isTwoDigits(m.Prefix):
		report(fmt.Sprintf("prefix must be exactly two digits, got %q", m.Prefix))
	}

	if m.Guard != nil && len(m.Guards) > 0 {
		report("'guard' and 'guards' are mutually exclusive")
	}
	if m.Guard != nil {
		validateGuard(m.Guard, "guard", report)
	}
	for i := range m.Guards {
		validateGuard(&m.Guards[i], fmt.Sprintf("guards[%d]", i), report)
	}

	validateBodyFields(moduleBody(m), "", report)

	if m.Conditional != nil && len(m.Conditional) == 0 {
		report("'conditional' must have at least one branch")
	}
	validateBranches(m.Conditional, report)

	if !hasModuleBody(m) {
		report("needs at least one of paths, env, aliases, tool, eval_command, source_file, conditional, body")
	}
}

// bodyFieldSet is the view of the body-type fields shared by modules
// and branches, used to validate both with one walk.
type bodyFieldSet struct {
	Paths       []string
	Env         []Pair
	Aliases     []Pair
	Tool        string
	EvalCommand string
	SourceFiles []string
	Body        *BodyVariant
}

func moduleBody(m *ModuleSpec) bodyFieldSet {
	return bodyFieldSet{
		Paths: m.Paths, Env: m.Env, Aliases: m.Aliases,
		Tool: m.Tool, EvalCommand: m.EvalCommand,
		SourceFiles: m.SourceFiles, Body: m.Body,
	}
}

func branchBody(b *Branch) bodyFieldSet {
	return bodyFieldSet{
		Paths: b.Paths, Env: b.Env, Aliases: b.Aliases,
		Tool: b.Tool, EvalCommand: b.EvalCommand,
		SourceFiles: b.SourceFiles, Body: b.Body,
	}
}

func hasModuleBody(m *ModuleSpec) bool {
	return len(m.Paths) > 0 || len(m.Env) > 0 || len(m.Aliases) > 0 ||
		m.Tool != "" || m.EvalCommand != "" || len(m.SourceFiles) > 0 ||
		len(m.Conditional) > 0 || m.Body != nil
}

func hasBranchBody(b *Branch) bool {
	return len(b.Paths) > 0 || len(b.Env) > 0 || len(b.Aliases) > 0 ||
		b.Tool != "" || b.EvalCommand != "" || len(b.SourceFiles) > 0 ||
		b.Body != nil
}

// validateBodyFields checks the one-line constraints every body-type
// field must honor: emitters place each entry on a single generated
// line, so embedded newlines would corrupt the file. Free-form body
// text is exempt.
func validateBodyFields(b bodyFieldSet, ctx string, report func(string)) {
	at := func(msg string) string {
		if ctx == "" {
			return msg
		}
		return ctx + ": " + msg
	}

	for i, p := range b.Paths {
		if p == "" {
			report(at(fmt.Sprintf("paths[%d] must not be empty", i)))
		} else if strings.ContainsAny(p, "\r\n") {
			report(at(fmt.Sprintf("paths[%d] must be a single line", i)))
		}
	}
	validatePairs(b.Env, "env", at, report)
	validatePairs(b.Aliases, "aliases", at, report)
	if strings.ContainsAny(b.Tool, "\r\n") {
		report(at("'tool' must be a single line"))
	}
	if strings.ContainsAny(b.EvalCommand, "\r\n") {
		report(at("'eval_command' must be a single line"))
	}
	for i, p := range b.SourceFiles {
		if p == "" {
			report(at(fmt.Sprintf("source_file[%d] must not be empty", i)))
		} else if strings.ContainsAny(p, "\r\n") {
			report(at(fmt.Sprintf("source_file[%d] must be a single line", i)))
		}
	}
	if b.Body != nil {
		validateBodyVariant(b.Body, at("body"), report)
	}
}

func validatePairs(pairs []Pair, field string, at func(string) string, report func(string)) {
	for _, p := range pairs {
		if p.Name == "" {
			report(at(fmt.Sprintf("%s: entry name must not be empty", field)))
			continue
		}
		if strings.ContainsAny(p.Name, "\r\n") || strings.ContainsAny(p.Value, "\r\n") {
			report(at(fmt.Sprintf("%s: entry %q must be a single line", field, p.Name)))
		}
	}
}

func validateBodyVariant(v *BodyVariant, ctx string, report func(string)) {
	if v.IsBare {
		return
	}
	for _, key := range v.Unknown {
		report(fmt.Sprintf("%s: unknown variant key %q", ctx, key))
	}
	if len(v.Variants) == 0 {
		report(fmt.Sprintf("%s: defines no recognized shell variant", ctx))
	}
}

func validateBranches(branches []Branch, report func(string)) {
	for i := range branches {
		b := &branches[i]
		at := func(msg string) string { return fmt.Sprintf("conditional[%d]: %s", i, msg) }

		for _, issue := range b.Issues {
			report(at(issue))
		}

		switch b.Directive {
		case "":
			report(at("branch must start with 'if', 'elif' or 'else'"))
		case DirectiveIf:
			if i != 0 {
				report(at("'if' only starts a chain; use 'elif'"))
			}
			if b.Guard == nil {
				report(at("'if' requires a condition"))
			}
		case DirectiveElif:
			if i == 0 {
				report(at("chain must start with 'if'"))
			}
			if b.Guard == nil {
				report(at("'elif' requires a condition"))
			}
		case DirectiveElse:
			if i == 0 {
				report(at("chain must start with 'if'"))
			}
			if i != len(branches)-1 {
				report(at("'else' must be the last branch"))
			}
			if b.Guard != nil {
				report(at("'else' takes no condition"))
			}
		}

		if b.Guard != nil {
			validateGuard(b.Guard, at("condition"), report)
		}
		validateBodyFields(branchBody(b), fmt.Sprintf("conditional[%d]", i), report)
		if !hasBranchBody(b) {
			report(at("needs at least one of paths, env, aliases, tool, eval_command, source_file, body"))
		}
	}
}

func validateGuard(g *Guard, ctx string, report func(string)) {
	if g.Invalid != "" {
		report(fmt.Sprintf("%s: %s", ctx, g.Invalid))
		return
	}

	switch {
	case g.Atom != nil:
		validateAtom(g.Atom, ctx, report)
	case g.Not != nil:
		validateGuard(g.Not, ctx, report)
	case g.All != nil:
		if len(g.All) == 0 {
			report(fmt.Sprintf("%s: 'all' requires at least one guard", ctx))
		}
		for i := range g.All {
			validateGuard(&g.All[i], ctx, report)
		}
	case g.Any != nil:
		if len(g.Any) == 0 {
			report(fmt.Sprintf("%s: 'any' requires at least one guard", ctx))
		}
		for i := range g.Any {
			validateGuard(&g.Any[i], ctx, report)
		}
	default:
		report(fmt.Sprintf("%s: empty guard", ctx))
	}
}

func validateAtom(a *Atom, ctx string, report func(string)) {
	switch {
	case argGuardKinds[a.Kind]:
		if a.Arg == "" {
			report(fmt.Sprintf("%s: guard '%s' requires a value", ctx, a.Kind))
		} else if strings.ContainsAny(a.Arg, "\r\n") {
			report(fmt.Sprintf("%s: guard '%s' value must be a single line", ctx, a.Kind))
		}
	case pairGuardKinds[a.Kind]:
		if a.Var == "" {
			report(fmt.Sprintf("%s: guard '%s' requires 'var' and 'value'", ctx, a.Kind))
		} else if strings.ContainsAny(a.Var, "\r\n") || strings.ContainsAny(a.Value, "\r\n") {
			report(fmt.Sprintf("%s: guard '%s' parameters must be single lines", ctx, a.Kind))
		}
	case bareGuardKinds[a.Kind]:
		if a.HasParam {
			report(fmt.Sprintf("%s: guard '%s' takes no value", ctx, a.Kind))
		}
	default:
		report(fmt.Sprintf("%s: unknown guard '%s' (known: %s)",
			ctx, a.Kind, strings.Join(KnownGuardKinds(), ", ")))
	}
}

func reportMultiline(s, field string, report func(string)) {
	if strings.ContainsAny(s, "\r\n") {
		report(fmt.Sprintf("'%s' must be a single line", field))
	}
}

func isTwoDigits(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
