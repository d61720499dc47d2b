package naming

import (
	"fmt"
	"strings"

	"table-combiner/internal/config"
)

// Planner tracks sheet names already claimed during a run and resolves
// duplicates by appending _N suffixes. Excel treats sheet names
// case-insensitively, so claims are recorded in lowercase.
type Planner struct {
	claimed map[string]bool
}

// NewPlanner creates a ready-to-use planner
func NewPlanner() *Planner {
	return &Planner{claimed: make(map[string]bool)}
}

// Claim legalizes and truncates raw, then returns the first variant not yet
// claimed. Suffixed variants are re-truncated so the final name still fits
// within the sheet name limit, and are themselves checked for collisions.
func (p *Planner) Claim(raw string) string {
	base := Truncate(Legalize(raw), config.MaxSheetNameLength)
	candidate := base

	for idx := 1; p.claimed[strings.ToLower(candidate)]; idx++ {
		suffix := fmt.Sprintf("_%d", idx)
		if len([]rune(base))+len(suffix) > config.MaxSheetNameLength {
			candidate = Truncate(base, config.MaxSheetNameLength-len(suffix)) + suffix
		} else {
			candidate = base + suffix
		}
	}

	p.claimed[strings.ToLower(candidate)] = true
	return candidate
}
