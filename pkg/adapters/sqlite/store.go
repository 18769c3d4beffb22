// Package sqlite provides a RecordStore backed by a local SQLite database
// (modernc.org/sqlite, no cgo). Suitable for single-host deployments where
// the board should survive restarts without a Redis instance.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeLayout is RFC 3339 with fixed-width nanoseconds so that lexical order
// of the stored strings matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite database holding inquiry records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the CreatedAt source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (tests).
func Open(dataDir string, opts ...Option) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "askdesk.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies embedded SQL migration files that haven't been run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

const inquiryColumns = "id, title, content, author, password, is_secret, created_at, status, reply"

// List returns all inquiries newest first; ties on created_at fall back to
// insertion order via rowid.
func (s *Store) List(ctx context.Context) ([]domain.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+inquiryColumns+`
		FROM inquiries ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inq)
	}
	return out, rows.Err()
}

// Insert assigns an ID and CreatedAt and stores the new inquiry.
func (s *Store) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	inq := domain.Inquiry{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    draft.Author,
		Password:  draft.Password,
		IsSecret:  draft.IsSecret,
		CreatedAt: s.now().UTC(),
		Status:    domain.StatusPending,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inquiries (`+inquiryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		inq.ID, inq.Title, inq.Content, inq.Author, inq.Password,
		boolToInt(inq.IsSecret), inq.CreatedAt.Format(timeLayout), string(inq.Status),
	)
	if err != nil {
		return nil, err
	}
	return inq.Clone(), nil
}

// Update sets reply and status in a single statement.
func (s *Store) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET reply = ?, status = ? WHERE id = ?`,
		patch.Reply, string(patch.Status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the inquiry.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppliedMigrations returns the applied migration versions in ascending
// order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func scanInquiry(rows *sql.Rows) (*domain.Inquiry, error) {
	var (
		inq       domain.Inquiry
		isSecret  int
		createdAt string
		status    string
		reply     sql.NullString
	)
	if err := rows.Scan(&inq.ID, &inq.Title, &inq.Content, &inq.Author,
		&inq.Password, &isSecret, &createdAt, &status, &reply); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	inq.CreatedAt = t
	inq.IsSecret = isSecret != 0
	inq.Status = domain.Status(status)
	if reply.Valid {
		r := reply.String
		inq.Reply = &r
	}
	return &inq, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
