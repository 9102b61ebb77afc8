package membership

import (
	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/agubarev/groupsync/pkg/registry"
)

// GroupPlan is the desired outcome for a single access group
type GroupPlan struct {
	// platform group name
	Group string

	// the full desired member set; ignored when EnsureOnly is set
	Desired []platform.Account

	// when set, the group is only created if absent and its current
	// membership is never altered
	EnsureOnly bool

	// identities excluded because they own no platform account
	Dropped []string
}

// PlanProject computes the desired state of a project's access groups.
//
// Primary group (ss_<id>): an explicit access list wins; with no list a
// non-managed project falls back to the whole public identity set, while
// a managed one gets an empty group that must nevertheless exist.
//
// Contamination group (ss_<id>_human): an explicit list wins, even when
// it resolves to nothing; with no list the group is created empty when
// the contamination flag is set (never defaulting to public), and is not
// touched at all otherwise. The no-list/no-flag case yields no plan
// entry, which is distinct from an empty-membership entry.
func PlanProject(p registry.Project, facts *directory.Facts, idset *platform.IdentitySet) []GroupPlan {
	plans := make([]GroupPlan, 0, 2)

	primary := GroupPlan{Group: p.PrimaryGroup()}

	switch {
	case p.HasAccessList():
		primary.Desired, primary.Dropped = resolveTokens(p.AccessGroups, facts, idset)
	case !p.IsManaged():
		primary.Desired = idset.All()
	default:
		primary.Desired = make([]platform.Account, 0)
	}

	plans = append(plans, primary)

	switch {
	case p.HasContaminationList():
		contamination := GroupPlan{Group: p.ContaminationGroup()}
		contamination.Desired, contamination.Dropped = resolveTokens(p.ContaminationGroups, facts, idset)
		plans = append(plans, contamination)
	case p.Contaminated:
		plans = append(plans, GroupPlan{
			Group:      p.ContaminationGroup(),
			EnsureOnly: true,
		})
	}

	return plans
}
