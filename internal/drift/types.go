// Package drift compares a generated output set against what is on
// disk, classifying every managed file so check can report exactly
// what a regeneration would change.
package drift

// State classifies one managed file.
type State int

const (
	// InSync means the on-disk content matches the generated content.
	InSync State = iota
	// Stale means the file exists with different content.
	Stale
	// Missing means an expected file is absent.
	Missing
	// Orphan means a file still on disk is listed in a managed
	// .gitignore roster but no longer generated.
	Orphan
)

func (s State) String() string {
	switch s {
	case InSync:
		return "in sync"
	case Stale:
		return "stale"
	case Missing:
		return "missing"
	case Orphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// Symbol returns the one-character report marker.
func (s State) Symbol() string {
	switch s {
	case InSync:
		return "✓"
	case Stale:
		return "~"
	case Missing:
		return "✗"
	default:
		return "?"
	}
}

// Finding is the classification of a single file.
type Finding struct {
	Path  string
	State State
}

// Report collects every finding for one output layout.
type Report struct {
	Findings []Finding
}

// Clean reports whether every finding is InSync.
func (r *Report) Clean() bool {
	for _, f := range r.Findings {
		if f.State != InSync {
			return false
		}
	}
	return true
}

// Count returns how many findings carry the given state.
func (r *Report) Count(s State) int {
	n := 0
	for _, f := range r.Findings {
		if f.State == s {
			n++
		}
	}
	return n
}
