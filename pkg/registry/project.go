package registry

import "strings"

// release strategies; only "managed" carries special meaning, any
// other value is treated as non-managed
const StrategyManaged = "managed"

// Project is a single access-policy record from the study registry.
// Records are read once per run and never mutated.
type Project struct {
	// registry identifier, also the stem of the access group names
	ID string

	// whitespace-separated tokens, each either a directory group
	// name or a bare identity; empty means "no explicit access list"
	AccessGroups string

	// same token grammar, governing the contamination group
	ContaminationGroups string

	// release classification
	ReleaseStrategy string

	// whether the study's data is flagged as containing
	// contaminated human material
	Contaminated bool

	// number of associated sequencing runs; carried through from the
	// registry but not consulted by any policy decision
	SeqRunCount int
}

// IsManaged reports whether the project is under managed release policy
func (p Project) IsManaged() bool {
	return p.ReleaseStrategy == StrategyManaged
}

// HasAccessList reports whether the access string carries any tokens
func (p Project) HasAccessList() bool {
	return len(strings.Fields(p.AccessGroups)) > 0
}

// HasContaminationList reports whether the contamination string carries any tokens
func (p Project) HasContaminationList() bool {
	return len(strings.Fields(p.ContaminationGroups)) > 0
}

// PrimaryGroup returns the name of the project's primary access group
func (p Project) PrimaryGroup() string {
	return "ss_" + p.ID
}

// ContaminationGroup returns the name of the project's contamination access group
func (p Project) ContaminationGroup() string {
	return "ss_" + p.ID + "_human"
}
