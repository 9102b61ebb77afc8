package platform

import (
	"sort"
	"strings"
)

// Account represents an identity as it is known to the storage platform,
// optionally qualified by the zone it was registered in. One directory
// identity may own any number of platform accounts (typically one per zone).
type Account struct {
	UID  string
	Zone string
}

// ParseAccount parses a platform member name of the form "uid" or "uid#zone"
func ParseAccount(s string) Account {
	s = strings.TrimSpace(s)

	if pos := strings.IndexByte(s, '#'); pos != -1 {
		return Account{UID: s[:pos], Zone: s[pos+1:]}
	}

	return Account{UID: s}
}

// String renders the account the way the platform stores it
func (a Account) String() string {
	if a.Zone == "" {
		return a.UID
	}

	return a.UID + "#" + a.Zone
}

// SortAccounts orders accounts by their rendered name
// NOTE: sorting in place, for deterministic output only; membership
// itself carries no ordering significance
func SortAccounts(accs []Account) {
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].String() < accs[j].String()
	})
}

// DedupeAccounts returns a sorted slice with duplicates removed
func DedupeAccounts(accs []Account) []Account {
	seen := make(map[Account]struct{}, len(accs))
	result := make([]Account, 0, len(accs))

	for _, a := range accs {
		if _, ok := seen[a]; ok {
			continue
		}

		seen[a] = struct{}{}
		result = append(result, a)
	}

	SortAccounts(result)

	return result
}
