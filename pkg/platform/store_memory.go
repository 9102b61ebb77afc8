package platform

import (
	"context"
	"sort"
	"sync"
)

// memoryStore is an in-memory platform store, used in tests and wherever
// a real permission database is unavailable
type memoryStore struct {
	groups map[string]map[string]struct{}

	sync.RWMutex
}

// NewMemoryStore returns an initialized platform store
// that keeps all groups in memory
func NewMemoryStore() (Store, error) {
	s := &memoryStore{
		groups: make(map[string]map[string]struct{}),
	}

	return s, nil
}

func (s *memoryStore) GroupExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyGroupName
	}

	s.RLock()
	_, ok := s.groups[name]
	s.RUnlock()

	return ok, nil
}

func (s *memoryStore) CreateGroup(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyGroupName
	}

	s.Lock()
	if _, ok := s.groups[name]; !ok {
		s.groups[name] = make(map[string]struct{})
	}
	s.Unlock()

	return nil
}

func (s *memoryStore) GroupMembers(ctx context.Context, name string) ([]string, error) {
	s.RLock()
	defer s.RUnlock()

	g, ok := s.groups[name]
	if !ok {
		return nil, ErrGroupNotFound
	}

	members := make([]string, 0, len(g))
	for m := range g {
		members = append(members, m)
	}

	sort.Strings(members)

	return members, nil
}

func (s *memoryStore) AddMember(ctx context.Context, name string, member string) error {
	s.Lock()
	defer s.Unlock()

	g, ok := s.groups[name]
	if !ok {
		return ErrGroupNotFound
	}

	g[member] = struct{}{}

	return nil
}

func (s *memoryStore) RemoveMember(ctx context.Context, name string, member string) error {
	s.Lock()
	defer s.Unlock()

	g, ok := s.groups[name]
	if !ok {
		return ErrGroupNotFound
	}

	delete(g, member)

	return nil
}
