package registry

import (
	"context"
	"database/sql"

	"github.com/gocraft/dbr/v2"
)

// MySQLStore is the default registry store implementation
type MySQLStore struct {
	db *dbr.Connection
}

// NewMySQLStore returns a registry store with mysql used as a backend
func NewMySQLStore(db *dbr.Connection) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &MySQLStore{db}, nil
}

// projectRow mirrors the registry schema; optional access strings are
// nullable there and collapse to "" on conversion
type projectRow struct {
	ID                  string         `db:"id_study"`
	AccessGroups        sql.NullString `db:"access_groups"`
	ContaminationGroups sql.NullString `db:"contamination_groups"`
	ReleaseStrategy     sql.NullString `db:"release_strategy"`
	Contaminated        bool           `db:"contaminated_human"`
	SeqRunCount         int            `db:"seq_run_count"`
}

func (r projectRow) convert() Project {
	return Project{
		ID:                  r.ID,
		AccessGroups:        r.AccessGroups.String,
		ContaminationGroups: r.ContaminationGroups.String,
		ReleaseStrategy:     r.ReleaseStrategy.String,
		Contaminated:        r.Contaminated,
		SeqRunCount:         r.SeqRunCount,
	}
}

const projectQuery = `
SELECT s.id_study,
       s.access_groups,
       s.contamination_groups,
       s.release_strategy,
       s.contaminated_human,
       (SELECT COUNT(*) FROM seq_run r WHERE r.id_study = s.id_study) AS seq_run_count
FROM study s`

// FetchProjects retrieves project records ordered by id, optionally
// restricted to an id allow-list
func (s *MySQLStore) FetchProjects(ctx context.Context, ids []string) (ps []Project, err error) {
	q := projectQuery
	args := make([]interface{}, 0, 1)

	if len(ids) > 0 {
		q += " WHERE s.id_study IN ?"
		args = append(args, ids)
	}

	q += " ORDER BY s.id_study"

	var rows []projectRow

	if _, err := s.db.NewSession(nil).SelectBySql(q, args...).LoadContext(ctx, &rows); err != nil {
		return nil, err
	}

	ps = make([]Project, 0, len(rows))
	for _, r := range rows {
		ps = append(ps, r.convert())
	}

	return ps, nil
}
