package directory_test

import (
	"context"
	"testing"

	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/stretchr/testify/assert"
)

func TestBuildFactsMergesPrimaryAssociations(t *testing.T) {
	a := assert.New(t)

	groups := []directory.Group{
		{Name: "groupA", GID: 100, Members: []string{"bob", "carol"}},
		{Name: "groupB", GID: 200, Members: []string{}},
	}

	primary := map[string]uint32{
		"alice": 200, // joins groupB via primary association
		"bob":   100, // already a direct member of groupA
		"eve":   999, // no such group: dropped without error
	}

	f := directory.BuildFacts(groups, primary)

	a.Equal(2, f.Len())
	a.True(f.HasGroup("groupA"))
	a.False(f.HasGroup("groupC"))

	members, ok := f.GroupMembers("groupA")
	a.True(ok)
	a.Equal([]string{"bob", "carol"}, members)

	members, ok = f.GroupMembers("groupB")
	a.True(ok)
	a.Equal([]string{"alice"}, members)

	_, ok = f.GroupMembers("groupC")
	a.False(ok)
}

func TestBuildFactsDeduplicates(t *testing.T) {
	a := assert.New(t)

	f := directory.BuildFacts(
		[]directory.Group{{Name: "groupA", GID: 100, Members: []string{"bob", "bob", "carol"}}},
		map[string]uint32{"bob": 100},
	)

	members, ok := f.GroupMembers("groupA")
	a.True(ok)
	a.Equal([]string{"bob", "carol"}, members)
}

func TestFetchFacts(t *testing.T) {
	a := assert.New(t)

	c := directory.NewMemoryClient(
		[]directory.Group{{Name: "groupA", GID: 100, Members: []string{"bob"}}},
		map[string]uint32{"carol": 100},
	)

	f, err := directory.FetchFacts(context.Background(), c)
	a.NoError(err)

	members, ok := f.GroupMembers("groupA")
	a.True(ok)
	a.Equal([]string{"bob", "carol"}, members)

	_, err = directory.FetchFacts(context.Background(), nil)
	a.Error(err)
}
