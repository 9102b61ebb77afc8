package platform

// IdentitySet is an immutable snapshot of every account registered in the
// platform's "public" group, indexed by its base directory identity (uid).
// It is built once per run and is the universe of eligible group members:
// an identity that is absent from "public" simply cannot be made a member
// of any access group.
type IdentitySet struct {
	byUID map[string][]Account
	all   []Account
}

// BuildIdentitySet groups raw "public" member names by their base uid
func BuildIdentitySet(members []string) *IdentitySet {
	s := &IdentitySet{
		byUID: make(map[string][]Account, len(members)),
	}

	seen := make(map[Account]struct{}, len(members))

	for _, m := range members {
		a := ParseAccount(m)
		if a.UID == "" {
			continue
		}

		// the platform enforces set semantics but the listing itself
		// is not trusted to be free of duplicates
		if _, ok := seen[a]; ok {
			continue
		}

		seen[a] = struct{}{}
		s.byUID[a.UID] = append(s.byUID[a.UID], a)
		s.all = append(s.all, a)
	}

	SortAccounts(s.all)

	return s
}

// Resolve returns the zero-or-more platform accounts registered for a
// directory identity; an unknown identity yields nil and is not an error
func (s *IdentitySet) Resolve(uid string) []Account {
	return s.byUID[uid]
}

// All returns every account known to "public", sorted by name
func (s *IdentitySet) All() []Account {
	accs := make([]Account, len(s.all))
	copy(accs, s.all)

	return accs
}

// Len returns the number of distinct platform accounts in the set
func (s *IdentitySet) Len() int {
	return len(s.all)
}
