package membership_test

import (
	"testing"

	"github.com/agubarev/groupsync/pkg/membership"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/agubarev/groupsync/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func TestPlanProjectExplicitAccessList(t *testing.T) {
	a := assert.New(t)

	p := registry.Project{ID: "P123", AccessGroups: "groupA alice"}

	plans := membership.PlanProject(p, testFacts(), testIdentitySet())
	a.Len(plans, 1)

	a.Equal("ss_P123", plans[0].Group)
	a.False(plans[0].EnsureOnly)
	a.Equal([]platform.Account{
		{UID: "alice", Zone: "zoneA"},
		{UID: "bob", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
	}, plans[0].Desired)
}

func TestPlanProjectNonManagedFallback(t *testing.T) {
	a := assert.New(t)

	idset := testIdentitySet()
	p := registry.Project{ID: "P200", ReleaseStrategy: "open"}

	plans := membership.PlanProject(p, testFacts(), idset)
	a.Len(plans, 1)
	a.Equal("ss_P200", plans[0].Group)

	// no explicit list and non-managed: everyone in public
	a.Equal(idset.All(), plans[0].Desired)
}

func TestPlanProjectManagedFallback(t *testing.T) {
	a := assert.New(t)

	// project P456: empty access string, managed classification
	p := registry.Project{ID: "P456", ReleaseStrategy: registry.StrategyManaged}

	plans := membership.PlanProject(p, testFacts(), testIdentitySet())
	a.Len(plans, 1)

	// desired membership is empty but the group is still reconciled,
	// which creates it if absent
	a.Equal("ss_P456", plans[0].Group)
	a.False(plans[0].EnsureOnly)
	a.Empty(plans[0].Desired)
}

func TestPlanProjectContaminationThreeWay(t *testing.T) {
	a := assert.New(t)

	facts := testFacts()
	idset := testIdentitySet()

	// (a) explicit contamination list: reconciled even when it
	// resolves to nothing
	p := registry.Project{ID: "P1", AccessGroups: "alice", ContaminationGroups: "mallory"}
	plans := membership.PlanProject(p, facts, idset)
	a.Len(plans, 2)
	a.Equal("ss_P1_human", plans[1].Group)
	a.False(plans[1].EnsureOnly)
	a.Empty(plans[1].Desired)
	a.Equal([]string{"mallory"}, plans[1].Dropped)

	// (b) no list, contamination flag set: group must exist, empty,
	// with no fallback to public
	p = registry.Project{ID: "P2", AccessGroups: "alice", Contaminated: true}
	plans = membership.PlanProject(p, facts, idset)
	a.Len(plans, 2)
	a.Equal("ss_P2_human", plans[1].Group)
	a.True(plans[1].EnsureOnly)

	// (c) no list, flag unset: the contamination group is not planned at all
	p = registry.Project{ID: "P3", AccessGroups: "alice"}
	plans = membership.PlanProject(p, facts, idset)
	a.Len(plans, 1)
	a.Equal("ss_P3", plans[0].Group)
}
