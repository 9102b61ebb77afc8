package membership_test

import (
	"testing"

	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/agubarev/groupsync/pkg/membership"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func testFacts() *directory.Facts {
	return directory.BuildFacts(
		[]directory.Group{
			{Name: "groupA", GID: 100, Members: []string{"bob", "carol"}},
			// "bob" is both a group name and an identity; the group must win
			{Name: "bob", GID: 200, Members: []string{"carol"}},
		},
		nil,
	)
}

func testIdentitySet() *platform.IdentitySet {
	return platform.BuildIdentitySet([]string{
		"alice#zoneA",
		"bob#zoneA",
		"carol#zoneA",
		"carol#zoneB",
	})
}

func TestResolveTokensExample(t *testing.T) {
	a := assert.New(t)

	// project P123: access string "groupA alice",
	// groupA merged members = {bob, carol}
	accs := membership.ResolveTokens("groupA alice", testFacts(), testIdentitySet())

	a.Equal([]platform.Account{
		{UID: "alice", Zone: "zoneA"},
		{UID: "bob", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
	}, accs)
}

func TestResolveTokensOrderIndependence(t *testing.T) {
	a := assert.New(t)

	facts := testFacts()
	idset := testIdentitySet()

	x := membership.ResolveTokens("groupA alice", facts, idset)
	y := membership.ResolveTokens("alice groupA", facts, idset)
	z := membership.ResolveTokens("  alice   groupA  ", facts, idset)

	a.Equal(x, y)
	a.Equal(x, z)
	a.Equal(platform.Fingerprint(x), platform.Fingerprint(y))
}

func TestResolveTokensGroupNameWins(t *testing.T) {
	a := assert.New(t)

	// "bob" names a directory group containing only carol; it must be
	// expanded as a group, not taken as the identity bob
	accs := membership.ResolveTokens("bob", testFacts(), testIdentitySet())

	a.Equal([]platform.Account{
		{UID: "carol", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
	}, accs)
}

func TestResolveTokensEmptyInput(t *testing.T) {
	a := assert.New(t)

	facts := testFacts()
	idset := testIdentitySet()

	a.Empty(membership.ResolveTokens("", facts, idset))
	a.Empty(membership.ResolveTokens("   \t  ", facts, idset))
}

func TestResolveTokensDropsUnknownIdentities(t *testing.T) {
	a := assert.New(t)

	// "mallory" is neither a group nor present in public: silently dropped
	accs := membership.ResolveTokens("mallory alice", testFacts(), testIdentitySet())

	a.Equal([]platform.Account{{UID: "alice", Zone: "zoneA"}}, accs)
}
