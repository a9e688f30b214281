package manifest

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML manifest. Mapping order is preserved for
// aliases and env blocks, which is why this walks yaml.Node trees
// instead of unmarshalling into maps. Unknown top-level keys are
// tolerated so manifests can carry anchors or co-located settings;
// unknown keys inside an entry surface through Validate.
func (p *Parser) ParseYAML(data []byte, path string) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Message: "invalid YAML", Detail: err.Error()}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Manifest{}, nil
	}

	root := deref(doc.Content[0])
	if isNull(root) {
		return &Manifest{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    path,
			Message: "manifest root must be a mapping",
			Detail:  "got " + nodeKindName(root),
		}
	}

	m := &Manifest{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		switch key {
		case fieldFunctions:
			fns, err := decodeFunctions(val, path)
			if err != nil {
				return nil, err
			}
			m.Functions = fns
		case fieldModules:
			mods, err := decodeModules(val, path)
			if err != nil {
				return nil, err
			}
			m.Modules = mods
		}
	}
	return m, nil
}

func decodeFunctions(n *yaml.Node, path string) ([]FunctionSpec, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, &ParseError{Path: path, Message: "'functions' must be a list", Detail: "got " + nodeKindName(n)}
	}
	fns := make([]FunctionSpec, 0, len(n.Content))
	for i, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.MappingNode {
			return nil, &ParseError{
				Path:    path,
				Message: fmt.Sprintf("functions[%d] must be a mapping", i),
				Detail:  "got " + nodeKindName(item),
			}
		}
		fns = append(fns, decodeFunction(item))
	}
	return fns, nil
}

func decodeModules(n *yaml.Node, path string) ([]ModuleSpec, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, &ParseError{Path: path, Message: "'modules' must be a list", Detail: "got " + nodeKindName(n)}
	}
	mods := make([]ModuleSpec, 0, len(n.Content))
	for i, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.MappingNode {
			return nil, &ParseError{
				Path:    path,
				Message: fmt.Sprintf("modules[%d] must be a mapping", i),
				Detail:  "got " + nodeKindName(item),
			}
		}
		mods = append(mods, decodeModule(item))
	}
	return mods, nil
}

func decodeFunction(n *yaml.Node) FunctionSpec {
	f := FunctionSpec{}
	report := func(msg string) { f.Issues = append(f.Issues, msg) }

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case fieldName:
			f.Name = scalarOrIssue(val, key, report)
		case fieldDescription:
			f.Description = scalarOrIssue(val, key, report)
		case fieldUsage:
			f.Usage = scalarOrIssue(val, key, report)
		case fieldPredicate:
			f.Predicate = scalarOrIssue(val, key, report)
		case fieldBody:
			f.Body = bodyVariantOrIssue(val, report)
		default:
			report(fmt.Sprintf("unknown field %q", key))
		}
	}
	return f
}

func decodeModule(n *yaml.Node) ModuleSpec {
	m := ModuleSpec{}
	report := func(msg string) { m.Issues = append(m.Issues, msg) }

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case fieldName:
			m.Name = scalarOrIssue(val, key, report)
		case fieldPrefix:
			m.Prefix = scalarOrIssue(val, key, report)
		case fieldDescription:
			m.Description = scalarOrIssue(val, key, report)
		case fieldURL:
			m.URL = scalarOrIssue(val, key, report)
		case fieldComment:
			m.Comment = scalarOrIssue(val, key, report)
		case fieldGuard:
			m.Guard = decodeGuard(val)
		case fieldGuards:
			m.Guards = guardListOrIssue(val, report)
		case fieldPaths:
			m.Paths = stringListOrIssue(val, key, false, report)
		case fieldEnv:
			m.Env = pairsOrIssue(val, key, report)
		case fieldAliases:
			m.Aliases = pairsOrIssue(val, key, report)
		case fieldTool:
			m.Tool = scalarOrIssue(val, key, report)
		case fieldEvalCommand:
			m.EvalCommand = scalarOrIssue(val, key, report)
		case fieldSourceFile:
			m.SourceFiles = stringListOrIssue(val, key, true, report)
		case fieldConditional:
			m.Conditional = branchesOrIssue(val, report)
		case fieldBody:
			m.Body = bodyVariantOrIssue(val, report)
		default:
			report(fmt.Sprintf("unknown field %q", key))
		}
	}
	return m
}

func decodeBranch(n *yaml.Node) Branch {
	b := Branch{}
	report := func(msg string) { b.Issues = append(b.Issues, msg) }

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case DirectiveIf, DirectiveElif:
			if b.Directive != "" {
				report("branch has more than one of 'if', 'elif', 'else'")
				continue
			}
			b.Directive = key
			if v := deref(val); !isNull(v) {
				b.Guard = decodeGuard(val)
			}
		case DirectiveElse:
			if b.Directive != "" {
				report("branch has more than one of 'if', 'elif', 'else'")
				continue
			}
			b.Directive = key
			// A bare "else:" decodes as null; Lua sources spell it
			// else = true, so a boolean is tolerated here too.
			if v := deref(val); !isNull(v) && v.Tag != "!!bool" {
				b.Guard = decodeGuard(val)
			}
		case fieldPaths:
			b.Paths = stringListOrIssue(val, key, false, report)
		case fieldEnv:
			b.Env = pairsOrIssue(val, key, report)
		case fieldAliases:
			b.Aliases = pairsOrIssue(val, key, report)
		case fieldTool:
			b.Tool = scalarOrIssue(val, key, report)
		case fieldEvalCommand:
			b.EvalCommand = scalarOrIssue(val, key, report)
		case fieldSourceFile:
			b.SourceFiles = stringListOrIssue(val, key, true, report)
		case fieldConditional:
			report("conditional branches do not nest")
		case fieldBody:
			b.Body = bodyVariantOrIssue(val, report)
		default:
			report(fmt.Sprintf("unknown field %q", key))
		}
	}
	return b
}

// decodeGuard turns a YAML node into a Guard. Shape problems land in
// Guard.Invalid so that validation can report them in context.
func decodeGuard(n *yaml.Node) *Guard {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return &Guard{Invalid: "guard must be a string or a mapping"}
		}
		return &Guard{Atom: &Atom{Kind: n.Value}}

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return &Guard{Invalid: "guard mapping must have exactly one key"}
		}
		key := n.Content[0].Value
		val := deref(n.Content[1])

		switch key {
		case guardKeyNot:
			return &Guard{Not: decodeGuard(val)}
		case guardKeyAll, guardKeyAny:
			if val.Kind != yaml.SequenceNode {
				return &Guard{Invalid: fmt.Sprintf("%q requires a list of guards", key)}
			}
			children := make([]Guard, 0, len(val.Content))
			for _, c := range val.Content {
				children = append(children, *decodeGuard(c))
			}
			if key == guardKeyAll {
				return &Guard{All: children}
			}
			return &Guard{Any: children}
		default:
			return decodeAtom(key, val)
		}

	default:
		return &Guard{Invalid: "guard must be a string or a mapping"}
	}
}

func decodeAtom(kind string, val *yaml.Node) *Guard {
	atom := &Atom{Kind: kind}
	switch val.Kind {
	case yaml.ScalarNode:
		if !isNull(val) && val.Value != "" {
			atom.Arg = val.Value
			atom.HasParam = true
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(val.Content); i += 2 {
			pk := val.Content[i].Value
			pv := deref(val.Content[i+1])
			if pv.Kind != yaml.ScalarNode {
				return &Guard{Invalid: fmt.Sprintf("guard %q: parameter %q must be a string", kind, pk)}
			}
			switch pk {
			case guardKeyVar:
				atom.Var = pv.Value
			case guardKeyValue:
				atom.Value = pv.Value
			default:
				return &Guard{Invalid: fmt.Sprintf("guard %q: unknown parameter %q", kind, pk)}
			}
		}
		atom.HasParam = true
	default:
		return &Guard{Invalid: fmt.Sprintf("guard %q: parameter must be a string or a mapping", kind)}
	}
	return &Guard{Atom: atom}
}

func guardListOrIssue(n *yaml.Node, report func(string)) []Guard {
	n = deref(n)
	if n.Kind != yaml.SequenceNode {
		report("'guards' must be a list")
		return nil
	}
	guards := make([]Guard, 0, len(n.Content))
	for _, c := range n.Content {
		guards = append(guards, *decodeGuard(c))
	}
	return guards
}

func branchesOrIssue(n *yaml.Node, report func(string)) []Branch {
	n = deref(n)
	if n.Kind != yaml.SequenceNode {
		report("'conditional' must be a list of branches")
		return nil
	}
	branches := make([]Branch, 0, len(n.Content))
	for i, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.MappingNode {
			report(fmt.Sprintf("conditional[%d] must be a mapping", i))
			continue
		}
		branches = append(branches, decodeBranch(item))
	}
	return branches
}

func bodyVariantOrIssue(n *yaml.Node, report func(string)) *BodyVariant {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			report("body must be a string or a mapping")
			return nil
		}
		return &BodyVariant{Bare: n.Value, IsBare: true}
	case yaml.MappingNode:
		v := &BodyVariant{Variants: make(map[string]string, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val := deref(n.Content[i+1])
			if val.Kind != yaml.ScalarNode || isNull(val) {
				report(fmt.Sprintf("body variant %q must be a string", key))
				continue
			}
			if !bodyVariantKeys[key] {
				v.Unknown = append(v.Unknown, key)
				continue
			}
			v.Variants[key] = val.Value
		}
		sort.Strings(v.Unknown)
		return v
	default:
		report("body must be a string or a mapping")
		return nil
	}
}

func pairsOrIssue(n *yaml.Node, field string, report func(string)) []Pair {
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		report(fmt.Sprintf("%q must be a mapping", field))
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	index := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := deref(n.Content[i+1])
		if val.Kind != yaml.ScalarNode {
			report(fmt.Sprintf("%s: value of %q must be a string", field, key))
			continue
		}
		// Duplicate keys win in place, same rule as cross-source merge.
		if at, ok := index[key]; ok {
			pairs[at].Value = val.Value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Name: key, Value: val.Value})
	}
	return pairs
}

func stringListOrIssue(n *yaml.Node, field string, allowScalar bool, report func(string)) []string {
	n = deref(n)
	if allowScalar && n.Kind == yaml.ScalarNode && !isNull(n) {
		return []string{n.Value}
	}
	if n.Kind != yaml.SequenceNode {
		if allowScalar {
			report(fmt.Sprintf("%q must be a string or a list of strings", field))
		} else {
			report(fmt.Sprintf("%q must be a list of strings", field))
		}
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.ScalarNode || isNull(item) {
			report(fmt.Sprintf("%s[%d] must be a string", field, i))
			continue
		}
		out = append(out, item.Value)
	}
	return out
}

func scalarOrIssue(n *yaml.Node, field string, report func(string)) string {
	n = deref(n)
	if n.Kind != yaml.ScalarNode {
		report(fmt.Sprintf("%q must be a string", field))
		return ""
	}
	if isNull(n) {
		return ""
	}
	return n.Value
}

// deref follows alias nodes with a small depth cap so that anchor
// cycles cannot hang the decoder.
func deref(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < 16; i++ {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown node"
}
