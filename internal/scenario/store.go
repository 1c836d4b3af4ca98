package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	description  TEXT NOT NULL DEFAULT '',
	params_json  TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);
`

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Store persists scenarios in SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dbPath == MemoryPath {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create validates sc, assigns it a new id and timestamps and stores it
func (s *Store) Create(ctx context.Context, sc *Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	params, err := json.Marshal(sc.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := nameTaken(ctx, tx, sc.Name, ""); err != nil {
		return err
	}

	id := uuid.New().String()
	now := s.now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, description, params_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, sc.Name, sc.Description, string(params), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	sc.ID, sc.CreatedAt, sc.UpdatedAt = id, now, now
	return nil
}

// Update replaces the name, description and parameters of an existing scenario
func (s *Store) Update(ctx context.Context, sc *Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	params, err := json.Marshal(sc.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := nameTaken(ctx, tx, sc.Name, sc.ID); err != nil {
		return err
	}

	now := s.now()
	res, err := tx.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, description = ?, params_json = ?, updated_at = ? WHERE id = ?`,
		sc.Name, sc.Description, string(params), now.Format(time.RFC3339Nano), sc.ID,
	)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	var created string
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM scenarios WHERE id = ?`, sc.ID).Scan(&created); err != nil {
		return fmt.Errorf("read created_at: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt = now
	return nil
}

// Get returns the scenario with the given id
func (s *Store) Get(ctx context.Context, id string) (*Scenario, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, selectScenario+` WHERE id = ?`, id))
}

// GetByName returns the scenario with the given name
func (s *Store) GetByName(ctx context.Context, name string) (*Scenario, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, selectScenario+` WHERE name = ?`, name))
}

// Find looks ref up as an id first and as a name second
func (s *Store) Find(ctx context.Context, ref string) (*Scenario, error) {
	if _, err := uuid.Parse(ref); err == nil {
		sc, err := s.Get(ctx, ref)
		if !errors.Is(err, ErrNotFound) {
			return sc, err
		}
	}
	return s.GetByName(ctx, ref)
}

// List returns all scenarios ordered by name
func (s *Store) List(ctx context.Context) ([]*Scenario, error) {
	rows, err := s.db.QueryContext(ctx, selectScenario+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var out []*Scenario
	for rows.Next() {
		sc, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Delete removes the scenario with the given id
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectScenario = `SELECT id, name, description, params_json, created_at, updated_at FROM scenarios`

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanOne(row *sql.Row) (*Scenario, error) {
	sc, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sc, err
}

func scan(r scanner) (*Scenario, error) {
	var (
		sc               Scenario
		params           string
		created, updated string
	)
	if err := r.Scan(&sc.ID, &sc.Name, &sc.Description, &params, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan scenario: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &sc.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}

	var err error
	if sc.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if sc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &sc, nil
}

// nameTaken reports ErrDuplicateName when another scenario uses name
func nameTaken(ctx context.Context, tx *sql.Tx, name, exceptID string) error {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scenarios WHERE name = ? AND id <> ?`, name, exceptID,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}
