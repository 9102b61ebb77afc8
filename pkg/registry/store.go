package registry

import (
	"context"
	"errors"
)

// errors
var (
	ErrNilDatabase     = errors.New("database is nil")
	ErrNilStore        = errors.New("registry store is nil")
	ErrProjectNotFound = errors.New("project not found")
)

// Store describes the read-only contract owed by the study registry:
// an ordered stream of project records, optionally restricted to an
// allow-list of project ids. Absence of an access string in the registry
// is collapsed to the empty string here; the policy layer treats both
// the same way.
type Store interface {
	FetchProjects(ctx context.Context, ids []string) ([]Project, error)
}
