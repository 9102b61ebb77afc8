package platform_test

import (
	"context"
	"testing"

	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func newReconciler(t *testing.T) (*platform.Reconciler, platform.Store) {
	a := assert.New(t)

	s, err := platform.NewMemoryStore()
	a.NoError(err)

	r, err := platform.NewReconciler(s)
	a.NoError(err)

	return r, s
}

func TestReconcilerCreatesMissingGroup(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	r, s := newReconciler(t)

	// creating counts as a change even with an empty desired set
	changed, err := r.Apply(ctx, "ss_P456", nil, false)
	a.NoError(err)
	a.True(changed)

	exists, err := s.GroupExists(ctx, "ss_P456")
	a.NoError(err)
	a.True(exists)

	members, err := s.GroupMembers(ctx, "ss_P456")
	a.NoError(err)
	a.Empty(members)

	// second pass is a no-op
	changed, err = r.Apply(ctx, "ss_P456", nil, false)
	a.NoError(err)
	a.False(changed)
}

func TestReconcilerMinimalDiff(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	r, s := newReconciler(t)

	a.NoError(s.CreateGroup(ctx, "ss_P1"))
	a.NoError(s.AddMember(ctx, "ss_P1", "alice#zoneA"))
	a.NoError(s.AddMember(ctx, "ss_P1", "mallory#zoneA"))

	desired := []platform.Account{
		{UID: "alice", Zone: "zoneA"},
		{UID: "bob", Zone: "zoneA"},
	}

	changed, err := r.Apply(ctx, "ss_P1", desired, false)
	a.NoError(err)
	a.True(changed)

	members, err := s.GroupMembers(ctx, "ss_P1")
	a.NoError(err)
	a.Equal([]string{"alice#zoneA", "bob#zoneA"}, members)

	// idempotence
	changed, err = r.Apply(ctx, "ss_P1", desired, false)
	a.NoError(err)
	a.False(changed)
}

func TestReconcilerDedupesDesired(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	r, s := newReconciler(t)

	desired := []platform.Account{
		{UID: "alice", Zone: "zoneA"},
		{UID: "alice", Zone: "zoneA"},
		{UID: "alice", Zone: "zoneA"},
	}

	changed, err := r.Apply(ctx, "ss_P2", desired, false)
	a.NoError(err)
	a.True(changed)

	members, err := s.GroupMembers(ctx, "ss_P2")
	a.NoError(err)
	a.Equal([]string{"alice#zoneA"}, members)
}

func TestReconcilerDryRun(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	r, s := newReconciler(t)

	a.NoError(s.CreateGroup(ctx, "ss_P3"))
	a.NoError(s.AddMember(ctx, "ss_P3", "mallory#zoneA"))

	desired := []platform.Account{{UID: "alice", Zone: "zoneA"}}

	// dry-run reports the same verdict a live run would
	changed, err := r.Apply(ctx, "ss_P3", desired, true)
	a.NoError(err)
	a.True(changed)

	// ...but mutates nothing
	members, err := s.GroupMembers(ctx, "ss_P3")
	a.NoError(err)
	a.Equal([]string{"mallory#zoneA"}, members)

	// a missing group is not created under dry-run either
	changed, err = r.Apply(ctx, "ss_P4", desired, true)
	a.NoError(err)
	a.True(changed)

	exists, err := s.GroupExists(ctx, "ss_P4")
	a.NoError(err)
	a.False(exists)
}

func TestReconcilerEnsureExists(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	r, s := newReconciler(t)

	created, err := r.EnsureExists(ctx, "ss_P5_human", false)
	a.NoError(err)
	a.True(created)

	// no-op once the group is there
	created, err = r.EnsureExists(ctx, "ss_P5_human", false)
	a.NoError(err)
	a.False(created)

	// never alters existing membership
	a.NoError(s.AddMember(ctx, "ss_P5_human", "alice#zoneA"))

	created, err = r.EnsureExists(ctx, "ss_P5_human", false)
	a.NoError(err)
	a.False(created)

	members, err := s.GroupMembers(ctx, "ss_P5_human")
	a.NoError(err)
	a.Equal([]string{"alice#zoneA"}, members)

	// dry-run reports creation without performing it
	created, err = r.EnsureExists(ctx, "ss_P6_human", true)
	a.NoError(err)
	a.True(created)

	exists, err := s.GroupExists(ctx, "ss_P6_human")
	a.NoError(err)
	a.False(exists)
}
