package database

import (
	"strings"

	"github.com/gocraft/dbr/v2"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	"github.com/pkg/errors"
)

// Connect opens and verifies a mysql connection
// NOTE: both the registry and the platform's permission database go
// through here; a failure to connect is fatal for the run
func Connect(dsn string) (*dbr.Connection, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}

	conn, err := dbr.Open("mysql", dsn, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := conn.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return conn, nil
}
