package platform

import (
	"context"
	"errors"
)

// errors
var (
	ErrNilDatabase    = errors.New("database is nil")
	ErrNilStore       = errors.New("platform store is nil")
	ErrGroupNotFound  = errors.New("group not found")
	ErrEmptyGroupName = errors.New("empty group name")
	ErrNothingChanged = errors.New("nothing changed")
)

// PublicGroup is the platform's pseudo-group listing every registered account
const PublicGroup = "public"

// Store describes the administrative contract of the platform's permission
// system: group existence, creation and membership manipulation. All
// membership is set-semantic; adding an existing member or removing an
// absent one must not fail.
type Store interface {
	GroupExists(ctx context.Context, name string) (bool, error)
	CreateGroup(ctx context.Context, name string) error
	GroupMembers(ctx context.Context, name string) ([]string, error)
	AddMember(ctx context.Context, name string, member string) error
	RemoveMember(ctx context.Context, name string, member string) error
}
