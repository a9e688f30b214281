// Package manifest loads, merges and validates shellgen manifests.
//
// A manifest describes shell startup behavior declaratively: standalone
// functions (one-line OS predicates or full bodies) and prefix-ordered
// startup modules (PATH entries, exported variables, aliases, tool
// inits, sourced files, conditional blocks and raw bodies), all gated
// by boolean guards.
//
// Manifests come from two source formats:
//   - shell.yaml: plain YAML; aliases/env mapping order is preserved
//   - shell.lua: a sandboxed Lua script that sets a global "shellgen"
//     table; a read-only platform table is injected so one source can
//     describe several machines
//
// Multiple sources merge in order with last-wins semantics by name.
// Decoding is shape-lenient: problems inside an entry are recorded on
// the entry instead of failing the parse, so that Validate can report
// every finding across the whole manifest in a single pass.
package manifest
