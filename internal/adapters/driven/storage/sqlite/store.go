// Package sqlite provides persistent storage backed by SQLite.
//
// It implements the ContentMemory port with a durable per-session window
// and stores accepted page documents for later inspection.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pageforge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
)

// DefaultWindow is the number of recent generations remembered per session.
const DefaultWindow = 10

// Store is a SQLite-backed storage for content memory and persisted pages.
type Store struct {
	db     *sql.DB
	path   string
	window int
}

// Ensure Store implements the interface.
var _ driven.ContentMemory = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pageforge/data/pageforge.db.
// The optional config store may override the memory window.
func NewStore(dataDir string, cfg driven.ConfigStore) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pageforge", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "pageforge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	window := DefaultWindow
	if cfg != nil {
		if w := cfg.GetInt(driven.ConfigMemoryWindow); w > 0 {
			window = w
		}
	}

	s := &Store{
		db:     db,
		path:   dbPath,
		window: window,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Content Memory ====================

// Warning renders an instruction block listing prior headlines and feature
// titles for the session. Returns an empty string for unknown sessions.
func (s *Store) Warning(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT headline, feature_titles FROM content_memory
		WHERE session_id = ? ORDER BY id
	`, sessionID)
	if err != nil {
		return "", fmt.Errorf("querying content memory: %w", err)
	}
	defer rows.Close()

	var headlines, titles []string
	seen := make(map[string]bool)
	for rows.Next() {
		var headline, titlesJSON string
		if err := rows.Scan(&headline, &titlesJSON); err != nil {
			return "", fmt.Errorf("scanning content memory row: %w", err)
		}
		if headline != "" && !seen[headline] {
			seen[headline] = true
			headlines = append(headlines, headline)
		}
		var featureTitles []string
		if err := json.Unmarshal([]byte(titlesJSON), &featureTitles); err != nil {
			return "", fmt.Errorf("unmarshaling feature titles: %w", err)
		}
		for _, t := range featureTitles {
			if t != "" && !seen[t] {
				seen[t] = true
				titles = append(titles, t)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating content memory rows: %w", err)
	}
	if len(headlines) == 0 && len(titles) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Avoid repeating content already shown in this session.\n")
	if len(headlines) > 0 {
		b.WriteString("Previously used headlines:\n")
		for _, h := range headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	if len(titles) > 0 {
		b.WriteString("Previously used feature titles:\n")
		for _, t := range titles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Track records the accepted headline and feature titles for the session,
// pruning rows beyond the recency window.
func (s *Store) Track(ctx context.Context, sessionID, headline string, featureTitles []string) error {
	if sessionID == "" {
		return nil
	}
	if headline == "" && len(featureTitles) == 0 {
		return nil
	}

	titlesJSON, err := json.Marshal(featureTitles)
	if err != nil {
		return fmt.Errorf("marshaling feature titles: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO content_memory (session_id, headline, feature_titles)
		VALUES (?, ?, ?)
	`, sessionID, headline, string(titlesJSON)); err != nil {
		return fmt.Errorf("inserting content memory: %w", err)
	}

	// Prune rows beyond the window, oldest first.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM content_memory
		WHERE session_id = ? AND id NOT IN (
			SELECT id FROM content_memory
			WHERE session_id = ? ORDER BY id DESC LIMIT ?
		)
	`, sessionID, sessionID, s.window); err != nil {
		return fmt.Errorf("pruning content memory: %w", err)
	}

	return tx.Commit()
}

// ==================== Persisted Pages ====================

// SavePage stores an accepted page document under the given id.
func (s *Store) SavePage(ctx context.Context, id, sessionID string, page *domain.PageDocument) error {
	if page == nil {
		return fmt.Errorf("%w: nil page", domain.ErrInvalidInput)
	}

	doc, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshaling page: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pages (id, session_id, page_type, title, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, sessionID, string(page.Type), page.Title, string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting page: %w", err)
	}
	return nil
}

// GetPage retrieves a persisted page document by id.
func (s *Store) GetPage(ctx context.Context, id string) (*domain.PageDocument, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM pages WHERE id = ?", id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: page %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying page: %w", err)
	}

	var page domain.PageDocument
	if err := json.Unmarshal([]byte(doc), &page); err != nil {
		return nil, fmt.Errorf("unmarshaling page: %w", err)
	}
	return &page, nil
}

// ListPages returns the ids and titles of persisted pages for a session,
// newest first. An empty sessionID lists all pages.
func (s *Store) ListPages(ctx context.Context, sessionID string) ([]PageSummary, error) {
	query := "SELECT id, page_type, title, created_at FROM pages ORDER BY created_at DESC"
	args := []any{}
	if sessionID != "" {
		query = "SELECT id, page_type, title, created_at FROM pages WHERE session_id = ? ORDER BY created_at DESC"
		args = append(args, sessionID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var summaries []PageSummary
	for rows.Next() {
		var sum PageSummary
		if err := rows.Scan(&sum.ID, &sum.PageType, &sum.Title, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning page row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating page rows: %w", err)
	}
	return summaries, nil
}

// PageSummary is a lightweight listing of a persisted page.
type PageSummary struct {
	ID        string
	PageType  string
	Title     string
	CreatedAt time.Time
}
