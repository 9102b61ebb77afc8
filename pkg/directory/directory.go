package directory

import (
	"errors"
	"sort"
)

// errors
var (
	ErrNilClient  = errors.New("directory client is nil")
	ErrNilFacts   = errors.New("directory facts are nil")
	ErrBindFailed = errors.New("directory bind failed")
)

// Group represents a directory-service group with its direct members
type Group struct {
	Name    string
	GID     uint32
	Members []string
}

// Facts is an immutable snapshot of merged directory membership: each
// group's direct members plus every identity whose primary group
// association resolves to it. Built once at the start of a run and
// read-only thereafter.
type Facts struct {
	members map[string][]string
}

// BuildFacts merges direct group members with primary-group associations.
// Associations referencing a GID with no corresponding group record are
// dropped without error; directory data routinely contains them.
func BuildFacts(groups []Group, primaryGID map[string]uint32) *Facts {
	byGID := make(map[uint32]string, len(groups))
	sets := make(map[string]map[string]struct{}, len(groups))

	for _, g := range groups {
		byGID[g.GID] = g.Name

		set, ok := sets[g.Name]
		if !ok {
			set = make(map[string]struct{}, len(g.Members))
			sets[g.Name] = set
		}

		for _, uid := range g.Members {
			if uid != "" {
				set[uid] = struct{}{}
			}
		}
	}

	for uid, gid := range primaryGID {
		name, ok := byGID[gid]
		if !ok {
			continue
		}

		if uid != "" {
			sets[name][uid] = struct{}{}
		}
	}

	f := &Facts{
		members: make(map[string][]string, len(sets)),
	}

	for name, set := range sets {
		uids := make([]string, 0, len(set))
		for uid := range set {
			uids = append(uids, uid)
		}

		// sorted for deterministic iteration downstream
		sort.Strings(uids)

		f.members[name] = uids
	}

	return f
}

// HasGroup reports whether a group of that name is known to the directory
func (f *Facts) HasGroup(name string) bool {
	_, ok := f.members[name]
	return ok
}

// GroupMembers returns the merged, deduplicated member identities of a
// group; the returned slice must be treated as read-only
func (f *Facts) GroupMembers(name string) ([]string, bool) {
	uids, ok := f.members[name]
	return uids, ok
}

// Len returns the number of known groups
func (f *Facts) Len() int {
	return len(f.members)
}
