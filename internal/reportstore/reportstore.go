// Package reportstore mirrors the pipeline's canonical edges and family
// assignments into a queryable database, for the `riftehr query` and
// `riftehr interactive` surfaces to run ad-hoc SQL against without
// re-reading TSV artifacts. Grounded on pkg/gedcom/query/hybrid_storage.go's
// initSQLite (WAL pragma, connection pool sizing, schema-on-open) for the
// default driver, and on query/hybrid_storage_postgres.go's
// initPostgreSQL (databaseURL falling back to the DATABASE_URL
// environment variable, connection pool settings) for the Postgres one.
package reportstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/family"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// DriverSQLite and DriverPostgres are the two storage backends Open
// accepts.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Store wraps the mirror database, SQLite- or Postgres-backed.
type Store struct {
	db     *sql.DB
	driver string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS canonical_edges (
	src   TEXT NOT NULL,
	dst   TEXT NOT NULL,
	label TEXT NOT NULL,
	PRIMARY KEY (src, dst, label)
);
CREATE INDEX IF NOT EXISTS idx_canonical_edges_src ON canonical_edges(src);
CREATE INDEX IF NOT EXISTS idx_canonical_edges_dst ON canonical_edges(dst);

CREATE TABLE IF NOT EXISTS family_assignments (
	family_id  INTEGER NOT NULL,
	patient_id TEXT NOT NULL,
	PRIMARY KEY (family_id, patient_id)
);
CREATE INDEX IF NOT EXISTS idx_family_assignments_patient ON family_assignments(patient_id);
`

// postgresSchema is the same DDL as sqliteSchema. The driver differences
// live in upsertIgnore: Postgres has no "INSERT OR IGNORE", so inserts use
// ON CONFLICT DO NOTHING, and placeholders are positional ($1, $2, ...)
// rather than `?`.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS canonical_edges (
	src   TEXT NOT NULL,
	dst   TEXT NOT NULL,
	label TEXT NOT NULL,
	PRIMARY KEY (src, dst, label)
);
CREATE INDEX IF NOT EXISTS idx_canonical_edges_src ON canonical_edges(src);
CREATE INDEX IF NOT EXISTS idx_canonical_edges_dst ON canonical_edges(dst);

CREATE TABLE IF NOT EXISTS family_assignments (
	family_id  INTEGER NOT NULL,
	patient_id TEXT NOT NULL,
	PRIMARY KEY (family_id, patient_id)
);
CREATE INDEX IF NOT EXISTS idx_family_assignments_patient ON family_assignments(patient_id);
`

// Open creates path's parent directory (SQLite only — a Postgres dsn has
// no local directory to create), opens the database, and applies the
// schema. driver is DriverSQLite or DriverPostgres; dsn is a filesystem
// path for SQLite or a connection string for Postgres. An empty dsn
// under DriverPostgres falls back to the DATABASE_URL environment
// variable, matching NewHybridStoragePostgres's contract.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case "", DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("reportstore: unknown driver %q", driver)
	}
}

func openSQLite(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("reportstore: create dir %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("reportstore: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("reportstore: create schema: %w", err)
	}
	return &Store{db: db, driver: DriverSQLite}, nil
}

func openPostgres(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("reportstore: no Postgres dsn given and DATABASE_URL is unset")
		}
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("reportstore: open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reportstore: ping postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("reportstore: create schema: %w", err)
	}
	return &Store{db: db, driver: DriverPostgres}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the raw connection for the interactive REPL's ad-hoc
// queries.
func (s *Store) DB() *sql.DB { return s.db }

// upsertIgnore returns the driver-appropriate "insert, ignoring a
// conflict on the primary key" statement for table with the given
// column list.
func (s *Store) upsertIgnore(table string, columns ...string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		if s.driver == DriverPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	colList, phList := "", ""
	for i, c := range columns {
		if i > 0 {
			colList += ", "
			phList += ", "
		}
		colList += c
		phList += placeholders[i]
	}
	if s.driver == DriverPostgres {
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, colList, phList)
	}
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)", table, colList, phList)
}

// WriteCanonicalEdges replaces the canonical_edges table's contents.
func (s *Store) WriteCanonicalEdges(edges []model.CanonicalEdge) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM canonical_edges"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(s.upsertIgnore("canonical_edges", "src", "dst", "label"))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range edges {
		if _, err := stmt.Exec(e.Src, e.Dst, string(e.Group)); err != nil {
			return fmt.Errorf("reportstore: insert edge %s-%s: %w", e.Src, e.Dst, err)
		}
	}
	return tx.Commit()
}

// WriteFamilyAssignments replaces the family_assignments table's
// contents.
func (s *Store) WriteFamilyAssignments(assignments []family.Assignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM family_assignments"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(s.upsertIgnore("family_assignments", "family_id", "patient_id"))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, a := range assignments {
		if _, err := stmt.Exec(a.FamilyID, a.PatientID); err != nil {
			return fmt.Errorf("reportstore: insert assignment %d/%s: %w", a.FamilyID, a.PatientID, err)
		}
	}
	return tx.Commit()
}
