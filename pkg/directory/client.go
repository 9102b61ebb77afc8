package directory

import "context"

// Client describes the read-only contract owed by the directory service:
// the full group listing with direct members, and each active identity's
// primary group association. Connection and bind failures are fatal for
// the run; there is no partial directory view.
type Client interface {
	Groups(ctx context.Context) ([]Group, error)
	PrimaryGIDs(ctx context.Context) (map[string]uint32, error)
	Close() error
}

// FetchFacts builds a merged membership snapshot from a live client
func FetchFacts(ctx context.Context, c Client) (*Facts, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}

	primary, err := c.PrimaryGIDs(ctx)
	if err != nil {
		return nil, err
	}

	return BuildFacts(groups, primary), nil
}
