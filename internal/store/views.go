// Package store persists named view parameters in SQLite. Only filter and
// sort settings are stored; records always come from the snapshot.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no saved view has the requested name.
var ErrNotFound = errors.New("saved view not found")

// View is a named set of view parameters for one record kind.
type View struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Kind       model.Kind    `json:"kind"`
	Filter     query.Filter  `json:"filter"`
	Sort       query.SortKey `json:"sort,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	LastUsedAt time.Time     `json:"lastUsedAt,omitzero"`
}

// Store provides SQLite-backed saved views.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the views database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening views db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the views database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save creates the view or replaces the parameters of the view with the
// same name. The parameters are validated against the kind first.
func (s *Store) Save(v View) (View, error) {
	if v.Name == "" {
		return View{}, errors.New("saved view needs a name")
	}
	if err := query.ValidateView(v.Kind, v.Filter, v.Sort); err != nil {
		return View{}, fmt.Errorf("saving view %q: %w", v.Name, err)
	}

	now := s.now().UTC()
	existing, err := s.Get(v.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		v.ID = uuid.NewString()
		v.CreatedAt = now
	case err != nil:
		return View{}, err
	default:
		v.ID = existing.ID
		v.CreatedAt = existing.CreatedAt
		v.LastUsedAt = existing.LastUsedAt
	}
	v.UpdatedAt = now

	_, err = s.db.Exec(`INSERT INTO saved_views
		(id, name, kind, search, status, priority, sort_key, created_at, updated_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			search = excluded.search,
			status = excluded.status,
			priority = excluded.priority,
			sort_key = excluded.sort_key,
			updated_at = excluded.updated_at`,
		v.ID, v.Name, string(v.Kind), v.Filter.Search, v.Filter.Status, v.Filter.Priority, string(v.Sort),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt), nullTime(v.LastUsedAt),
	)
	if err != nil {
		return View{}, fmt.Errorf("saving view %q: %w", v.Name, err)
	}
	return v, nil
}

const selectView = `SELECT id, name, kind, search, status, priority, sort_key,
	created_at, updated_at, last_used_at FROM saved_views`

// Get returns the view called name.
func (s *Store) Get(name string) (View, error) {
	row := s.db.QueryRow(selectView+" WHERE name = ?", name)
	v, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return View{}, fmt.Errorf("reading view %q: %w", name, err)
	}
	return v, nil
}

// List returns saved views ordered by name. An empty kind lists every view.
func (s *Store) List(kind model.Kind) ([]View, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if kind == "" {
		rows, err = s.db.Query(selectView + " ORDER BY name")
	} else {
		rows, err = s.db.Query(selectView+" WHERE kind = ? ORDER BY name", string(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var views []View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("listing views: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// Delete removes the view called name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM saved_views WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting view %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// MarkUsed records that the view called name was just applied.
func (s *Store) MarkUsed(name string) error {
	res, err := s.db.Exec("UPDATE saved_views SET last_used_at = ? WHERE name = ?",
		formatTime(s.now().UTC()), name)
	if err != nil {
		return fmt.Errorf("marking view %q used: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of saved views.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM saved_views").Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(sc scanner) (View, error) {
	var (
		v                View
		kind, sortKey    string
		created, updated string
		lastUsed         sql.NullString
	)
	err := sc.Scan(&v.ID, &v.Name, &kind, &v.Filter.Search, &v.Filter.Status, &v.Filter.Priority,
		&sortKey, &created, &updated, &lastUsed)
	if err != nil {
		return View{}, err
	}
	v.Kind = model.Kind(kind)
	v.Sort = query.SortKey(sortKey)
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	v.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	if lastUsed.Valid && lastUsed.String != "" {
		v.LastUsedAt, _ = time.Parse(time.RFC3339Nano, lastUsed.String)
	}
	return v, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}
