package plugins

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// SQLite builds units that run a query against a SQLite database file.
type SQLite struct {
	about
	logger ports.Logger
}

// NewSQLite creates the sqlite plugin.
func NewSQLite(deps Deps) *SQLite {
	return &SQLite{
		about: about{
			name:    "sqlite",
			summary: "Runs a query against a SQLite database",
			help: `The sqlite plugin opens a database file on first use and runs the query on every invocation, logging how many rows it returned. Query errors are plugin failures.

Options:
  path   database file; ":memory:" for a private in-memory database (required)
  query  SQL to run (required)`,
			sample: `      - name: count
        plugin: sqlite
        options:
          path: data.db
          query: SELECT 1
`,
		},
		logger: deps.Logger,
	}
}

type sqliteOptions struct {
	Path  string `mapstructure:"path"`
	Query string `mapstructure:"query"`
}

// Build creates a sqlite unit.
func (s *SQLite) Build(section domain.PluginSection) (ports.Unit, error) {
	var opts sqliteOptions
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}
	return &sqliteUnit{label: unitLabel(section), name: section.Name, opts: opts, logger: s.logger}, nil
}

type sqliteUnit struct {
	label  string
	name   string
	opts   sqliteOptions
	logger ports.Logger
	db     *sql.DB
}

func (u *sqliteUnit) Invoke(ctx context.Context) error {
	if u.db == nil {
		db, err := sql.Open("sqlite", u.opts.Path)
		if err != nil {
			return failed(u.name, "cannot open database", err)
		}
		// A private in-memory database lives as long as its one connection.
		db.SetMaxOpenConns(1)
		u.db = db
	}

	rows, err := u.db.QueryContext(ctx, u.opts.Query)
	if err != nil {
		return failed(u.name, "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return failed(u.name, "reading rows failed", err)
	}

	u.logger.Info(fmt.Sprintf("%s returned %d rows", u.label, count))
	return nil
}

func (u *sqliteUnit) Validate() error {
	if u.opts.Path == "" {
		return invalid(u.name, "sqlite path is not set")
	}
	if u.opts.Query == "" {
		return invalid(u.name, "sqlite query is not set")
	}
	return nil
}

func (u *sqliteUnit) Close() error {
	if u.db == nil {
		return nil
	}
	err := u.db.Close()
	u.db = nil
	return err
}

func (u *sqliteUnit) String() string {
	return u.label
}
