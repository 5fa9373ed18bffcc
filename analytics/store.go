// Package analytics records page visits in a local SQLite database.
// Visitors are identified only by a salted hash of their IP; the salt is
// generated once per database, so raw addresses are never stored.
package analytics

import (
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

// Visit is a single recorded page view.
type Visit struct {
	IPHash    string
	Path      string
	Referrer  string
	UserAgent string
	Timestamp time.Time
}

// PathCount pairs a path with its visit count.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// SummaryResult aggregates visits since a cutoff.
type SummaryResult struct {
	TotalVisits    int64       `json:"totalVisits"`
	UniqueVisitors int64       `json:"uniqueVisitors"`
	TopPaths       []PathCount `json:"topPaths"`
}

// Store provides database operations for analytics.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the analytics database at dbPath, ensures the
// schema, and loads the hashing salt, generating one on first use.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create analytics dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure analytics schema: %w", err)
	}
	if err := s.loadSalt(); err != nil {
		return nil, fmt.Errorf("init analytics salt: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ip_hash TEXT NOT NULL,
    path TEXT NOT NULL,
    referrer TEXT,
    user_agent TEXT,
    timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
CREATE INDEX IF NOT EXISTS idx_visits_ip_hash ON visits(ip_hash);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

func (s *Store) loadSalt() error {
	var salt string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'salt'`).Scan(&salt)
	if err == sql.ErrNoRows {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		salt = hex.EncodeToString(buf)
		if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('salt', ?)`, salt); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	s.salt = salt
	return nil
}

// HashIP returns the salted hash under which a visitor's IP is stored.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(s.salt + ip))
	return hex.EncodeToString(sum[:])
}

// RecordVisit inserts a visit row.
func (s *Store) RecordVisit(v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO visits (ip_hash, path, referrer, user_agent, timestamp) VALUES (?, ?, ?, ?, ?)`,
		v.IPHash, v.Path, v.Referrer, v.UserAgent, v.Timestamp,
	)
	return err
}

// Summary aggregates visits recorded since the cutoff.
func (s *Store) Summary(since time.Time) (SummaryResult, error) {
	var res SummaryResult
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT ip_hash) FROM visits WHERE timestamp >= ?`, since,
	).Scan(&res.TotalVisits, &res.UniqueVisitors)
	if err != nil {
		return SummaryResult{}, err
	}

	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS n FROM visits WHERE timestamp >= ? GROUP BY path ORDER BY n DESC, path LIMIT 10`,
		since,
	)
	if err != nil {
		return SummaryResult{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return SummaryResult{}, err
		}
		res.TopPaths = append(res.TopPaths, pc)
	}
	return res, rows.Err()
}

// PurgeOlderThan deletes visits older than the given number of days and
// returns the number of rows removed.
func (s *Store) PurgeOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler purges old visits on the given interval until the
// returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.PurgeOlderThan(retentionDays)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
