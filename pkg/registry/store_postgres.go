package registry

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx"
	"github.com/pkg/errors"
)

// PostgresStore is a registry store over a postgres-backed registry
type PostgresStore struct {
	db *pgx.Conn
}

// NewPostgresStore returns a registry store with postgres used as a backend
func NewPostgresStore(db *pgx.Conn) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &PostgresStore{db}, nil
}

const projectQueryPostgres = `
SELECT s.id_study,
       s.access_groups,
       s.contamination_groups,
       s.release_strategy,
       s.contaminated_human,
       (SELECT COUNT(*) FROM seq_run r WHERE r.id_study = s.id_study) AS seq_run_count
FROM study s`

// FetchProjects retrieves project records ordered by id, optionally
// restricted to an id allow-list
func (s *PostgresStore) FetchProjects(ctx context.Context, ids []string) (ps []Project, err error) {
	q := projectQueryPostgres
	args := make([]interface{}, 0, 1)

	if len(ids) > 0 {
		q += " WHERE s.id_study = ANY($1)"
		args = append(args, ids)
	}

	q += " ORDER BY s.id_study"

	rows, err := s.db.QueryEx(ctx, q, nil, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch projects")
	}
	defer rows.Close()

	ps = make([]Project, 0)

	for rows.Next() {
		var (
			id                           string
			access, contamination, strat sql.NullString
			contaminated                 bool
			seqRuns                      int
		)

		if err = rows.Scan(&id, &access, &contamination, &strat, &contaminated, &seqRuns); err != nil {
			return ps, errors.Wrap(err, "failed to scan project")
		}

		ps = append(ps, Project{
			ID:                  id,
			AccessGroups:        access.String,
			ContaminationGroups: contamination.String,
			ReleaseStrategy:     strat.String,
			Contaminated:        contaminated,
			SeqRunCount:         seqRuns,
		})
	}

	return ps, nil
}
