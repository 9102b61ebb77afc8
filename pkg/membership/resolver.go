package membership

import (
	"strings"

	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/agubarev/groupsync/pkg/platform"
)

// ResolveTokens expands a raw whitespace-separated access string into the
// set of platform accounts it denotes. Each token is first tried as a
// directory group name (in which case it stands for the group's full
// merged membership) and only then taken as a literal identity; a token
// matching both is always a group. Identities without any platform
// account contribute nothing. The result is independent of token order.
func ResolveTokens(raw string, facts *directory.Facts, idset *platform.IdentitySet) []platform.Account {
	accs, _ := resolveTokens(raw, facts, idset)
	return accs
}

// resolveTokens additionally reports the identities that were silently
// dropped for lack of a platform account, for audit purposes
func resolveTokens(raw string, facts *directory.Facts, idset *platform.IdentitySet) (accs []platform.Account, dropped []string) {
	accs = make([]platform.Account, 0)

	for _, uid := range expandTokens(raw, facts) {
		resolved := idset.Resolve(uid)
		if len(resolved) == 0 {
			dropped = append(dropped, uid)
			continue
		}

		accs = append(accs, resolved...)
	}

	return platform.DedupeAccounts(accs), dropped
}

// expandTokens flattens an access string into identities, replacing each
// group-name token with the group's merged members
// NOTE: duplicates are allowed here; the caller treats the final
// result as a set
func expandTokens(raw string, facts *directory.Facts) []string {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil
	}

	uids := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if members, ok := facts.GroupMembers(token); ok {
			uids = append(uids, members...)
			continue
		}

		uids = append(uids, token)
	}

	return uids
}
