package manifest

import (
	"context"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/platform"
)

// luaGlobalShellgen is the global table a Lua manifest must define.
const luaGlobalShellgen = "shellgen"

// Field sets used to flag unknown keys on Lua entries.
var (
	luaFunctionFields = map[string]bool{
		fieldName: true, fieldDescription: true, fieldUsage: true,
		fieldPredicate: true, fieldBody: true,
	}
	luaModuleFields = map[string]bool{
		fieldName: true, fieldPrefix: true, fieldDescription: true,
		fieldURL: true, fieldComment: true, fieldGuard: true,
		fieldGuards: true, fieldPaths: true, fieldEnv: true,
		fieldAliases: true, fieldTool: true, fieldEvalCommand: true,
		fieldSourceFile: true, fieldConditional: true, fieldBody: true,
	}
	luaBranchFields = map[string]bool{
		DirectiveIf: true, DirectiveElif: true, DirectiveElse: true,
		fieldPaths: true, fieldEnv: true, fieldAliases: true,
		fieldTool: true, fieldEvalCommand: true, fieldSourceFile: true,
		fieldBody: true,
	}
)

// ParseLua executes a Lua manifest in the sandbox and extracts the
// global "shellgen" table. When the parser has a platform detector, a
// read-only platform table is injected first so the script can include
// entries conditionally (platform.when keeps array slots stable by
// returning nil for false conditions, which the extractor skips).
func (p *Parser) ParseLua(ctx context.Context, code string, path string) (*Manifest, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(code); err != nil {
		return nil, &ParseError{Path: path, Message: "Lua error", Detail: err.Error()}
	}

	return extractManifest(L, path)
}

func extractManifest(L *lua.LState, path string) (*Manifest, error) {
	global := L.GetGlobal(luaGlobalShellgen)
	if global.Type() != lua.LTTable {
		return nil, &ParseError{
			Path:    path,
			Message: "missing or invalid 'shellgen' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	m := &Manifest{}
	table := global.(*lua.LTable)

	if v := table.RawGetString(fieldFunctions); v.Type() == lua.LTTable {
		v.(*lua.LTable).ForEach(func(_, item lua.LValue) {
			if item.Type() == lua.LTNil {
				return
			}
			t, ok := item.(*lua.LTable)
			if !ok {
				m.Functions = append(m.Functions, FunctionSpec{
					Issues: []string{"entry must be a table"},
				})
				return
			}
			m.Functions = append(m.Functions, extractFunction(t))
		})
	}

	if v := table.RawGetString(fieldModules); v.Type() == lua.LTTable {
		v.(*lua.LTable).ForEach(func(_, item lua.LValue) {
			if item.Type() == lua.LTNil {
				return
			}
			t, ok := item.(*lua.LTable)
			if !ok {
				m.Modules = append(m.Modules, ModuleSpec{
					Issues: []string{"entry must be a table"},
				})
				return
			}
			m.Modules = append(m.Modules, extractModule(t))
		})
	}

	return m, nil
}

func extractFunction(t *lua.LTable) FunctionSpec {
	f := FunctionSpec{}
	report := func(msg string) { f.Issues = append(f.Issues, msg) }

	f.Name = luaStringField(t, fieldName, report)
	f.Description = luaStringField(t, fieldDescription, report)
	f.Usage = luaStringField(t, fieldUsage, report)
	f.Predicate = luaStringField(t, fieldPredicate, report)
	if v := t.RawGetString(fieldBody); v.Type() != lua.LTNil {
		f.Body = luaBodyVariant(v, report)
	}
	reportUnknownLuaFields(t, luaFunctionFields, report)
	return f
}

func extractModule(t *lua.LTable) ModuleSpec {
	m := ModuleSpec{}
	report := func(msg string) { m.Issues = append(m.Issues, msg) }

	m.Name = luaStringField(t, fieldName, report)
	m.Prefix = luaStringField(t, fieldPrefix, report)
	m.Description = luaStringField(t, fieldDescription, report)
	m.URL = luaStringField(t, fieldURL, report)
	m.Comment = luaStringField(t, fieldComment, report)

	if v := t.RawGetString(fieldGuard); v.Type() != lua.LTNil {
		m.Guard = luaGuard(v)
	}
	if v := t.RawGetString(fieldGuards); v.Type() != lua.LTNil {
		m.Guards = luaGuardList(v, report)
	}
	m.Paths = luaStringList(t.RawGetString(fieldPaths), fieldPaths, false, report)
	m.Env = luaPairs(t.RawGetString(fieldEnv), fieldEnv, report)
	m.Aliases = luaPairs(t.RawGetString(fieldAliases), fieldAliases, report)
	m.Tool = luaStringField(t, fieldTool, report)
	m.EvalCommand = luaStringField(t, fieldEvalCommand, report)
	m.SourceFiles = luaStringList(t.RawGetString(fieldSourceFile), fieldSourceFile, true, report)
	if v := t.RawGetString(fieldConditional); v.Type() != lua.LTNil {
		m.Conditional = luaBranches(v, report)
	}
	if v := t.RawGetString(fieldBody); v.Type() != lua.LTNil {
		m.Body = luaBodyVariant(v, report)
	}
	reportUnknownLuaFields(t, luaModuleFields, report)
	return m
}

func extractBranch(t *lua.LTable) Branch {
	b := Branch{}
	report := func(msg string) { b.Issues = append(b.Issues, msg) }

	for _, directive := range []string{DirectiveIf, DirectiveElif, DirectiveElse} {
		v := t.RawGetString(directive)
		if v.Type() == lua.LTNil {
			continue
		}
		if b.Directive != "" {
			report("branch has more than one of 'if', 'elif', 'else'")
			continue
		}
		b.Directive = directive
		if directive == DirectiveElse {
			// The idiomatic spelling is ["else"] = true; anything
			// else is treated as a guard and rejected by Validate.
			if v.Type() != lua.LTBool {
				b.Guard = luaGuard(v)
			}
			continue
		}
		b.Guard = luaGuard(v)
	}

	b.Paths = luaStringList(t.RawGetString(fieldPaths), fieldPaths, false, report)
	b.Env = luaPairs(t.RawGetString(fieldEnv), fieldEnv, report)
	b.Aliases = luaPairs(t.RawGetString(fieldAliases), fieldAliases, report)
	b.Tool = luaStringField(t, fieldTool, report)
	b.EvalCommand = luaStringField(t, fieldEvalCommand, report)
	b.SourceFiles = luaStringList(t.RawGetString(fieldSourceFile), fieldSourceFile, true, report)
	if v := t.RawGetString(fieldConditional); v.Type() != lua.LTNil {
		report("conditional branches do not nest")
	}
	if v := t.RawGetString(fieldBody); v.Type() != lua.LTNil {
		b.Body = luaBodyVariant(v, report)
	}
	reportUnknownLuaFields(t, luaBranchFields, report)
	return b
}

func luaGuard(v lua.LValue) *Guard {
	switch v.Type() {
	case lua.LTString:
		return &Guard{Atom: &Atom{Kind: v.String()}}
	case lua.LTTable:
		t := v.(*lua.LTable)
		key, val, extra := singleLuaEntry(t)
		if extra {
			return &Guard{Invalid: "guard table must have exactly one key"}
		}
		if key == "" {
			return &Guard{Invalid: "guard must be a string or a table"}
		}
		switch key {
		case guardKeyNot:
			return &Guard{Not: luaGuard(val)}
		case guardKeyAll, guardKeyAny:
			children, ok := luaGuardChildren(val)
			if !ok {
				return &Guard{Invalid: fmt.Sprintf("%q requires a list of guards", key)}
			}
			if key == guardKeyAll {
				return &Guard{All: children}
			}
			return &Guard{Any: children}
		default:
			return luaAtom(key, val)
		}
	default:
		return &Guard{Invalid: "guard must be a string or a table"}
	}
}

func luaAtom(kind string, val lua.LValue) *Guard {
	atom := &Atom{Kind: kind}
	switch val.Type() {
	case lua.LTString, lua.LTNumber:
		if s := val.String(); s != "" {
			atom.Arg = s
			atom.HasParam = true
		}
	case lua.LTTable:
		t := val.(*lua.LTable)
		key, _ := t.Next(lua.LNil)
		for key != lua.LNil {
			s, ok := key.(lua.LString)
			if !ok || (string(s) != guardKeyVar && string(s) != guardKeyValue) {
				return &Guard{Invalid: fmt.Sprintf("guard %q: unknown parameter %v", kind, key)}
			}
			key, _ = t.Next(key)
		}
		atom.Var = luaOptString(t.RawGetString(guardKeyVar))
		atom.Value = luaOptString(t.RawGetString(guardKeyValue))
		atom.HasParam = true
	default:
		return &Guard{Invalid: fmt.Sprintf("guard %q: parameter must be a string or a table", kind)}
	}
	return &Guard{Atom: atom}
}

func luaGuardChildren(val lua.LValue) ([]Guard, bool) {
	t, ok := val.(*lua.LTable)
	if !ok {
		return nil, false
	}
	children := make([]Guard, 0, t.Len())
	t.ForEach(func(_, item lua.LValue) {
		if item.Type() == lua.LTNil {
			return
		}
		children = append(children, *luaGuard(item))
	})
	return children, true
}

func luaGuardList(v lua.LValue, report func(string)) []Guard {
	children, ok := luaGuardChildren(v)
	if !ok {
		report("'guards' must be a list")
		return nil
	}
	return children
}

func luaBranches(v lua.LValue, report func(string)) []Branch {
	t, ok := v.(*lua.LTable)
	if !ok {
		report("'conditional' must be a list of branches")
		return nil
	}
	var branches []Branch
	t.ForEach(func(_, item lua.LValue) {
		if item.Type() == lua.LTNil {
			return
		}
		bt, ok := item.(*lua.LTable)
		if !ok {
			branches = append(branches, Branch{Issues: []string{"branch must be a table"}})
			return
		}
		branches = append(branches, extractBranch(bt))
	})
	return branches
}

func luaBodyVariant(v lua.LValue, report func(string)) *BodyVariant {
	switch v.Type() {
	case lua.LTString:
		return &BodyVariant{Bare: v.String(), IsBare: true}
	case lua.LTTable:
		t := v.(*lua.LTable)
		bv := &BodyVariant{Variants: make(map[string]string)}
		key, val := t.Next(lua.LNil)
		for key != lua.LNil {
			if s, ok := key.(lua.LString); ok {
				name := string(s)
				if val.Type() != lua.LTString && val.Type() != lua.LTNumber {
					report(fmt.Sprintf("body variant %q must be a string", name))
				} else if !bodyVariantKeys[name] {
					bv.Unknown = append(bv.Unknown, name)
				} else {
					bv.Variants[name] = val.String()
				}
			}
			key, val = t.Next(key)
		}
		sort.Strings(bv.Unknown)
		return bv
	default:
		report("body must be a string or a table")
		return nil
	}
}

// luaPairs decodes an ordered name/value list. The schema is an array
// of single-entry tables because Lua hash iteration order is not
// stable, and generation must be deterministic.
func luaPairs(v lua.LValue, field string, report func(string)) []Pair {
	if v.Type() == lua.LTNil {
		return nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		report(fmt.Sprintf("%q must be an array of single-entry tables", field))
		return nil
	}
	var pairs []Pair
	index := make(map[string]int)
	hashStyle := false
	t.ForEach(func(k, item lua.LValue) {
		if _, isNumber := k.(lua.LNumber); !isNumber {
			hashStyle = true
			return
		}
		if item.Type() == lua.LTNil {
			return
		}
		entry, ok := item.(*lua.LTable)
		if !ok {
			report(fmt.Sprintf("%s entries must be single-entry tables", field))
			return
		}
		ek, ev := entry.Next(lua.LNil)
		if ek == lua.LNil {
			report(fmt.Sprintf("%s entries must not be empty", field))
			return
		}
		if next, _ := entry.Next(ek); next != lua.LNil {
			report(fmt.Sprintf("%s entries must have exactly one key", field))
			return
		}
		name := luaOptString(ek)
		if name == "" {
			report(fmt.Sprintf("%s entry keys must be strings", field))
			return
		}
		if ev.Type() != lua.LTString && ev.Type() != lua.LTNumber {
			report(fmt.Sprintf("%s: value of %q must be a string", field, name))
			return
		}
		if at, ok := index[name]; ok {
			pairs[at].Value = ev.String()
			return
		}
		index[name] = len(pairs)
		pairs = append(pairs, Pair{Name: name, Value: ev.String()})
	})
	if hashStyle {
		report(fmt.Sprintf("%s must be an array of single-entry tables, not a plain table (hash order is not stable)", field))
	}
	return pairs
}

func luaStringList(v lua.LValue, field string, allowScalar bool, report func(string)) []string {
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTString:
		if allowScalar {
			return []string{v.String()}
		}
		report(fmt.Sprintf("%q must be a list of strings", field))
		return nil
	case lua.LTTable:
		var out []string
		v.(*lua.LTable).ForEach(func(_, item lua.LValue) {
			switch item.Type() {
			case lua.LTNil:
			case lua.LTString, lua.LTNumber:
				out = append(out, item.String())
			default:
				report(fmt.Sprintf("%s entries must be strings", field))
			}
		})
		return out
	default:
		if allowScalar {
			report(fmt.Sprintf("%q must be a string or a list of strings", field))
		} else {
			report(fmt.Sprintf("%q must be a list of strings", field))
		}
		return nil
	}
}

func luaStringField(t *lua.LTable, field string, report func(string)) string {
	v := t.RawGetString(field)
	switch v.Type() {
	case lua.LTNil:
		return ""
	case lua.LTString, lua.LTNumber:
		return v.String()
	default:
		report(fmt.Sprintf("%q must be a string", field))
		return ""
	}
}

func luaOptString(v lua.LValue) string {
	switch v.Type() {
	case lua.LTString, lua.LTNumber:
		return v.String()
	}
	return ""
}

// singleLuaEntry returns the sole string-keyed entry of t. extra is
// true when t holds more than one entry.
func singleLuaEntry(t *lua.LTable) (key string, val lua.LValue, extra bool) {
	k, v := t.Next(lua.LNil)
	if k == lua.LNil {
		return "", lua.LNil, false
	}
	if next, _ := t.Next(k); next != lua.LNil {
		return "", lua.LNil, true
	}
	s, ok := k.(lua.LString)
	if !ok {
		return "", lua.LNil, false
	}
	return string(s), v, false
}

func reportUnknownLuaFields(t *lua.LTable, allowed map[string]bool, report func(string)) {
	var unknown []string
	key, _ := t.Next(lua.LNil)
	for key != lua.LNil {
		if s, ok := key.(lua.LString); ok && !allowed[string(s)] {
			unknown = append(unknown, string(s))
		}
		key, _ = t.Next(key)
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		report(fmt.Sprintf("unknown field %q", k))
	}
}
