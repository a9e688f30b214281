package drift

import (
	"fmt"
	"strings"
)

// Format renders a report for terminal display: one marked line per
// finding, a blank line, then a summary.
func Format(r *Report) string {
	var sb strings.Builder
	sb.Grow(64 + len(r.Findings)*80)

	for _, f := range r.Findings {
		if f.State == InSync {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.State.Symbol(), f.Path))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", f.State.Symbol(), f.Path, f.State))
	}

	sb.WriteString("\n")
	total := len(r.Findings)
	if r.Clean() {
		sb.WriteString(fmt.Sprintf("%d files checked: all in sync\n", total))
		return sb.String()
	}

	parts := []string{fmt.Sprintf("%d in sync", r.Count(InSync))}
	if n := r.Count(Stale); n > 0 {
		parts = append(parts, fmt.Sprintf("%d stale", n))
	}
	if n := r.Count(Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", n))
	}
	if n := r.Count(Orphan); n > 0 {
		parts = append(parts, fmt.Sprintf("%d orphaned", n))
	}
	sb.WriteString(fmt.Sprintf("%d files checked: %s\n", total, strings.Join(parts, ", ")))
	return sb.String()
}
