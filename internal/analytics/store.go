// Package analytics records privacy-conscious page views and outbound link
// clicks in SQLite. Client IPs are never stored; only a salted, truncated
// hash is kept so unique visitors can be counted.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type PageView struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Page      string    `json:"page"`
	Timestamp time.Time `json:"timestamp"`
}

type PageCount struct {
	Page  string `json:"page"`
	Views int64  `json:"views"`
}

type LinkStat struct {
	Key         string    `json:"key"`
	Target      string    `json:"target"`
	Clicks      int64     `json:"clicks"`
	LastClicked time.Time `json:"last_clicked"`
}

type Stats struct {
	TotalViews     int64       `json:"total_views"`
	UniqueVisitors int64       `json:"unique_visitors"`
	ViewsToday     int64       `json:"views_today"`
	ViewsThisWeek  int64       `json:"views_this_week"`
	TotalClicks    int64       `json:"total_clicks"`
	ViewsByPage    []PageCount `json:"views_by_page"`
	TopLinks       []LinkStat  `json:"top_links"`
	RecentViews    []PageView  `json:"recent_views"`
}

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS page_views (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	page TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_page_views_timestamp ON page_views(timestamp);

CREATE TABLE IF NOT EXISTS link_clicks (
	link_key TEXT PRIMARY KEY,
	target TEXT NOT NULL,
	clicks INTEGER NOT NULL DEFAULT 0,
	last_clicked DATETIME NOT NULL
);
`

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db)
}

// OpenMemory opens a private in-memory database, mostly for tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// HashIP returns a salted hash of ip, stable for the life of the process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordView stores a view of page by the visitor at ip.
func (s *Store) RecordView(ctx context.Context, ip, userAgent, page string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_views (hashed_ip, user_agent, page, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, page, s.now().UTC())
	if err != nil {
		return fmt.Errorf("recording view of %s: %w", page, err)
	}
	return nil
}

// RecordClick counts a click on the outbound link key pointing at target.
func (s *Store) RecordClick(ctx context.Context, key, target string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO link_clicks (link_key, target, clicks, last_clicked)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(link_key) DO UPDATE SET
			clicks = clicks + 1,
			target = excluded.target,
			last_clicked = excluded.last_clicked
	`, key, target, s.now().UTC())
	if err != nil {
		return fmt.Errorf("recording click on %s: %w", key, err)
	}
	return nil
}

// Stats aggregates everything the admin dashboard shows.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalViews, `SELECT COUNT(*) FROM page_views`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM page_views`, nil},
		{&stats.ViewsToday, `SELECT COUNT(*) FROM page_views WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.ViewsThisWeek, `SELECT COUNT(*) FROM page_views WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalClicks, `SELECT COALESCE(SUM(clicks), 0) FROM link_clicks`, nil},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("counting views: %w", err)
		}
	}

	var err error
	if stats.ViewsByPage, err = s.viewsByPage(ctx); err != nil {
		return nil, err
	}
	if stats.TopLinks, err = s.topLinks(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentViews, err = s.RecentViews(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) viewsByPage(ctx context.Context) ([]PageCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page, COUNT(*) AS views
		FROM page_views
		GROUP BY page
		ORDER BY views DESC, page ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying views by page: %w", err)
	}
	defer rows.Close()

	var out []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Page, &pc.Views); err != nil {
			return nil, fmt.Errorf("scanning page count: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (s *Store) topLinks(ctx context.Context, limit int) ([]LinkStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT link_key, target, clicks, last_clicked
		FROM link_clicks
		ORDER BY clicks DESC, last_clicked DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var out []LinkStat
	for rows.Next() {
		var l LinkStat
		if err := rows.Scan(&l.Key, &l.Target, &l.Clicks, &l.LastClicked); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// RecentViews returns the newest views first.
func (s *Store) RecentViews(ctx context.Context, limit int) ([]PageView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, page, timestamp
		FROM page_views
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent views: %w", err)
	}
	defer rows.Close()

	var out []PageView
	for rows.Next() {
		var v PageView
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Page, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes views older than retention and reports how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	res, err := s.db.ExecContext(ctx, `DELETE FROM page_views WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up views: %w", err)
	}
	return res.RowsAffected()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewToken returns a random hex token suitable for an admin cookie.
func NewToken() (string, error) {
	return randomHex(32)
}
