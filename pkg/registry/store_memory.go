package registry

import (
	"context"
	"sort"
)

// memoryStore serves a fixed project list, used in tests
type memoryStore struct {
	projects []Project
}

// NewMemoryStore returns a registry store over static data
func NewMemoryStore(projects []Project) Store {
	return &memoryStore{projects: projects}
}

func (s *memoryStore) FetchProjects(ctx context.Context, ids []string) ([]Project, error) {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	ps := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if len(allowed) > 0 {
			if _, ok := allowed[p.ID]; !ok {
				continue
			}
		}

		ps = append(ps, p)
	}

	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })

	return ps, nil
}
