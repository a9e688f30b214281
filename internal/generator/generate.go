package generator

import (
	"errors"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// Output maps each shell target to its generated files, keyed by
// path relative to that shell's output root (forward slashes).
type Output map[manifest.ShellTarget]map[string]string

// Generate compiles a manifest into the complete output map for all
// four shells. It performs no I/O, takes no locks and is safe to call
// from concurrent goroutines; identical manifests produce deep-equal
// maps. The manifest is checked up front and nothing renders unless
// everything can.
func Generate(m *manifest.Manifest) (Output, error) {
	if err := Check(m); err != nil {
		return nil, err
	}

	out := make(Output, 4)
	for _, sh := range manifest.Targets() {
		r := rendererFor(sh)
		files := make(map[string]string, len(m.Functions)+len(m.Modules))

		for i := range m.Functions {
			f := &m.Functions[i]
			content, err := renderFunction(r, f)
			if err != nil {
				return nil, err
			}
			files[FunctionPath(sh, f.Name)] = content
		}
		for i := range m.Modules {
			mod := &m.Modules[i]
			content, err := renderModule(r, mod)
			if err != nil {
				return nil, err
			}
			files[ModulePath(sh, mod.Prefix, mod.Name)] = content
		}

		out[sh] = files
	}
	return out, nil
}

// Check validates a manifest for generation: structural validation
// plus body resolution for every shell. All findings are reported
// together; the error message carries one finding per line.
func Check(m *manifest.Manifest) error {
	var errs []error
	if verrs := manifest.Validate(m); len(verrs) > 0 {
		errs = append(errs, verrs)
	}

	for i := range m.Functions {
		f := &m.Functions[i]
		for _, sh := range missingShells(f.Body) {
			errs = append(errs, &RenderError{Kind: "function", Name: f.Name, Shell: sh})
		}
	}
	for i := range m.Modules {
		mod := &m.Modules[i]
		for _, sh := range missingShells(mod.Body) {
			errs = append(errs, &RenderError{Kind: "module", Name: mod.Name, Shell: sh})
		}
		for j := range mod.Conditional {
			for _, sh := range missingShells(mod.Conditional[j].Body) {
				errs = append(errs, &RenderError{Kind: "branch", Name: mod.Name, Shell: sh})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// missingShells reports the shells a body variant cannot serve.
// Variants with no recognized keys at all are left to Validate, so a
// single mistake is not reported five times.
func missingShells(v *manifest.BodyVariant) []manifest.ShellTarget {
	if v == nil || v.IsBare || len(v.Variants) == 0 {
		return nil
	}
	var missing []manifest.ShellTarget
	for _, sh := range manifest.Targets() {
		if _, ok := resolveBody(v, sh); !ok {
			missing = append(missing, sh)
		}
	}
	return missing
}
