package directory

import "context"

// memoryClient serves a fixed directory snapshot, used in tests
type memoryClient struct {
	groups  []Group
	primary map[string]uint32
}

// NewMemoryClient returns a directory client over static data
func NewMemoryClient(groups []Group, primary map[string]uint32) Client {
	return &memoryClient{
		groups:  groups,
		primary: primary,
	}
}

func (c *memoryClient) Groups(ctx context.Context) ([]Group, error) {
	return c.groups, nil
}

func (c *memoryClient) PrimaryGIDs(ctx context.Context) (map[string]uint32, error) {
	return c.primary, nil
}

func (c *memoryClient) Close() error {
	return nil
}
