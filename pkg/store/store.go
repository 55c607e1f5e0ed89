// Package store keeps named bounded buffers in an SQLite table. Each row holds
// the buffer's capacity budget and its raw layout image; layouts are validated
// again whenever they are loaded.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lil-go/pkg/bstr"
	"lil-go/pkg/buffers"
	"lil-go/pkg/errs"
	"lil-go/pkg/log"

	_ "modernc.org/sqlite"
)

// Name is the key type. Longer names are cut to its capacity.
type Name = bstr.Str[[33]byte]

var (
	ErrNotFound    = errors.New("store: no such buffer")
	ErrInvalidName = errors.New("store: empty buffer name")
	ErrClosed      = errors.New("store: closed")
)

const schema = `
CREATE TABLE IF NOT EXISTS buffers (
    name       TEXT PRIMARY KEY,
    budget     INTEGER NOT NULL,
    length     INTEGER NOT NULL,
    layout     BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);`

// Entry describes a stored buffer without loading it.
type Entry struct {
	Name      string    `json:"name"`
	Budget    int       `json:"budget"`
	Len       int       `json:"len"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the store database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One writer at a time; transactions in Update rely on it.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("store opened")
	return &Store{db: db, path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Key returns the stored form of name.
func Key(name string) (string, error) {
	n := bstr.FromString[[33]byte](name)
	if n.Empty() {
		return "", ErrInvalidName
	}
	return n.String(), nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func load(ctx context.Context, q querier, key string) (bstr.Buffer, error) {
	var budget int
	var layout []byte
	err := q.QueryRowContext(ctx, `SELECT budget, layout FROM buffers WHERE name = ?`, key).Scan(&budget, &layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", key, err)
	}
	return decode(budget, layout)
}

// decode takes its buffer from the shared pool; callers done with it may
// return it with buffers.Put.
func decode(budget int, layout []byte) (bstr.Buffer, error) {
	b, err := buffers.Get(budget)
	if err != nil {
		return nil, errs.Wrap(errs.DataCorrupted, err, "stored budget")
	}
	if err := b.UnmarshalBinary(layout); err != nil {
		buffers.Put(b)
		return nil, err
	}
	return b, nil
}

func save(ctx context.Context, q querier, key string, b bstr.Buffer) error {
	layout, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
INSERT INTO buffers (name, budget, length, layout, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    budget = excluded.budget, length = excluded.length,
    layout = excluded.layout, updated_at = excluded.updated_at`,
		key, bstr.Budget(b), b.Len(), layout, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}

// Put stores b under name, replacing any previous buffer.
func (s *Store) Put(ctx context.Context, name string, b bstr.Buffer) error {
	key, err := Key(name)
	if err != nil {
		return err
	}
	return save(ctx, s.db, key, b)
}

// Get loads the buffer stored under name.
func (s *Store) Get(ctx context.Context, name string) (bstr.Buffer, error) {
	key, err := Key(name)
	if err != nil {
		return nil, err
	}
	return load(ctx, s.db, key)
}

// Create stores a new empty buffer of the given budget unless name is taken.
func (s *Store) Create(ctx context.Context, name string, budget int) (bstr.Buffer, error) {
	key, err := Key(name)
	if err != nil {
		return nil, err
	}
	b, err := bstr.New(budget)
	if err != nil {
		return nil, err
	}
	layout, _ := b.MarshalBinary()
	res, err := s.db.ExecContext(ctx, `
INSERT INTO buffers (name, budget, length, layout, updated_at) VALUES (?, ?, 0, ?, ?)
ON CONFLICT(name) DO NOTHING`, key, budget, layout, time.Now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("store: create %q: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errs.Errorf(errs.IllegalState, "buffer %q already exists", key)
	}
	return b, nil
}

// Update loads name, hands it to fn and saves the result, all in one
// transaction. When fn fails nothing is written and its error is returned.
func (s *Store) Update(ctx context.Context, name string, fn func(bstr.Buffer) error) (bstr.Buffer, error) {
	key, err := Key(name)
	if err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	b, err := load(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if err := save(ctx, tx, key, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return b, nil
}

// Delete removes name, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := Key(name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM buffers WHERE name = ?`, key)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return nil
}

// List returns every stored buffer ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, budget, length, updated_at FROM buffers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updated int64
		if err := rows.Scan(&e.Name, &e.Budget, &e.Len, &updated); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
