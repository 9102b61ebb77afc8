package platform

import (
	"context"
	"database/sql"
	"io"

	"github.com/go-sql-driver/mysql"
	"github.com/gocraft/dbr/v2"
)

// MySQLStore is the default platform store implementation, working
// directly against the permission system's administrative database
type MySQLStore struct {
	db *dbr.Connection
}

// NewMySQLStore returns a platform store with mysql used as a backend
func NewMySQLStore(db *dbr.Connection) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &MySQLStore{db}, nil
}

// GroupExists checks whether a named access group is present
func (s *MySQLStore) GroupExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyGroupName
	}

	var id uint32

	err := s.db.NewSession(nil).
		SelectBySql("SELECT id FROM `access_group` WHERE `name` = ? LIMIT 1", name).
		LoadOneContext(ctx, &id)

	if err != nil {
		if err == dbr.ErrNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// CreateGroup creates an empty access group
func (s *MySQLStore) CreateGroup(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyGroupName
	}

	_, err := s.db.NewSession(nil).
		InsertInto("access_group").
		Columns("name").
		Values(name).
		ExecContext(ctx)

	// error handling
	if err != nil {
		switch err := err.(*mysql.MySQLError); err.Number {
		case 1062:
			// the group already exists; creation is idempotent
			return nil
		default:
			return err
		}
	}

	return nil
}

// GroupMembers returns the current member names of a group
func (s *MySQLStore) GroupMembers(ctx context.Context, name string) (members []string, err error) {
	members = make([]string, 0)

	rows, err := s.db.NewSession(nil).QueryContext(
		ctx,
		"SELECT m.member FROM `access_group_member` m JOIN `access_group` g ON g.id = m.group_id WHERE g.name = ?",
		name,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return members, nil
		}

		return nil, err
	}

	defer func(c io.Closer) {
		if xerr := c.Close(); xerr != nil {
			err = xerr
		}
	}(rows)

	for rows.Next() {
		var member string

		if err := rows.Scan(&member); err != nil {
			return nil, err
		}

		members = append(members, member)
	}

	return members, nil
}

// AddMember stores a group-member relation
// NOTE: INSERT IGNORE keeps the call idempotent; the platform
// enforces set semantics over memberships
func (s *MySQLStore) AddMember(ctx context.Context, name string, member string) error {
	_, err := s.db.ExecContext(
		ctx,
		"INSERT IGNORE INTO `access_group_member`(group_id, member) SELECT id, ? FROM `access_group` WHERE `name` = ?",
		member,
		name,
	)

	return err
}

// RemoveMember deletes a group-member relation
func (s *MySQLStore) RemoveMember(ctx context.Context, name string, member string) error {
	_, err := s.db.ExecContext(
		ctx,
		"DELETE m FROM `access_group_member` m JOIN `access_group` g ON g.id = m.group_id WHERE g.name = ? AND m.member = ?",
		name,
		member,
	)

	return err
}
