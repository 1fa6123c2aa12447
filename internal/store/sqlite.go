// Package store persists mesh snapshots to SQLite. The mesh itself is a
// pure in-memory structure; the store is an external collaborator that
// saves and restores full edge snapshots between CLI invocations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/mesh"
)

const schema = `
CREATE TABLE IF NOT EXISTS edges (
	source     TEXT NOT NULL,
	target     TEXT NOT NULL,
	context    TEXT NOT NULL,
	obligation REAL NOT NULL,
	soliton    REAL NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (source, target)
);
`

// MeshStore persists mesh snapshots in a SQLite database under
// <root>/.relmesh/mesh.db.
type MeshStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens the snapshot database for the given root directory.
func Open(root string) (*MeshStore, error) {
	dir := filepath.Join(root, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.Dir, err)
	}

	path := filepath.Join(dir, "mesh.db")
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &MeshStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *MeshStore) Path() string {
	return s.path
}

// Save replaces the stored snapshot with the mesh's current edge set.
// The replacement is transactional: a failure leaves the previous snapshot
// intact.
func (s *MeshStore) Save(ctx context.Context, m *mesh.Mesh) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (source, target, context, obligation, soliton, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, rec := range m.Edges() {
		if _, err := stmt.ExecContext(ctx, rec.Source, rec.Target, rec.Context, rec.Obligation, rec.Soliton, now); err != nil {
			return fmt.Errorf("failed to insert edge %s->%s: %w", rec.Source, rec.Target, err)
		}
	}

	return tx.Commit()
}

// Load restores the stored snapshot into a new mesh. An empty database
// yields an empty mesh, not an error.
func (s *MeshStore) Load(ctx context.Context) (*mesh.Mesh, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, target, context, obligation, soliton
		FROM edges ORDER BY source, target`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	m := mesh.New()
	for rows.Next() {
		var rec mesh.EdgeRecord
		if err := rows.Scan(&rec.Source, &rec.Target, &rec.Context, &rec.Obligation, &rec.Soliton); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		// Each direction is restored independently so pairs that diverged
		// on disk come back exactly as stored.
		m.RestoreEdge(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	return m, nil
}

// EdgeCount returns the number of directed edges in the stored snapshot.
func (s *MeshStore) EdgeCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM edges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *MeshStore) Close() error {
	return s.db.Close()
}
