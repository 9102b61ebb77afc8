package platform_test

import (
	"testing"

	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func TestParseAccount(t *testing.T) {
	a := assert.New(t)

	a.Equal(platform.Account{UID: "alice", Zone: "zoneA"}, platform.ParseAccount("alice#zoneA"))
	a.Equal(platform.Account{UID: "alice"}, platform.ParseAccount("alice"))
	a.Equal(platform.Account{UID: "alice"}, platform.ParseAccount("  alice "))
	a.Equal("alice#zoneA", platform.ParseAccount("alice#zoneA").String())
	a.Equal("alice", platform.ParseAccount("alice").String())
}

func TestDedupeAccounts(t *testing.T) {
	a := assert.New(t)

	accs := platform.DedupeAccounts([]platform.Account{
		{UID: "carol", Zone: "zoneB"},
		{UID: "bob", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
		{UID: "alice", Zone: "zoneA"},
		{UID: "bob", Zone: "zoneA"},
	})

	a.Equal([]platform.Account{
		{UID: "alice", Zone: "zoneA"},
		{UID: "bob", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
	}, accs)
}

func TestBuildIdentitySet(t *testing.T) {
	a := assert.New(t)

	s := platform.BuildIdentitySet([]string{
		"alice#zoneA",
		"bob#zoneA",
		"carol#zoneA",
		"carol#zoneB",
		"carol#zoneA", // duplicate listing entry
	})

	a.Equal(4, s.Len())

	a.Equal([]platform.Account{
		{UID: "carol", Zone: "zoneA"},
		{UID: "carol", Zone: "zoneB"},
	}, s.Resolve("carol"))

	a.Equal([]platform.Account{{UID: "alice", Zone: "zoneA"}}, s.Resolve("alice"))

	// an identity with no platform account resolves to nothing
	a.Empty(s.Resolve("mallory"))

	all := s.All()
	a.Len(all, 4)
	a.Equal(platform.Account{UID: "alice", Zone: "zoneA"}, all[0])
}

func TestFingerprintOrderIndependence(t *testing.T) {
	a := assert.New(t)

	x := []platform.Account{{UID: "alice", Zone: "zoneA"}, {UID: "bob", Zone: "zoneA"}}
	y := []platform.Account{{UID: "bob", Zone: "zoneA"}, {UID: "alice", Zone: "zoneA"}}

	a.Equal(platform.Fingerprint(x), platform.Fingerprint(y))
	a.NotEqual(platform.Fingerprint(x), platform.Fingerprint(x[:1]))
}
