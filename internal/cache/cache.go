// Package cache snapshots fetched event feeds in a local SQLite database so
// `streakcard --offline` can recompute stats without the network. It sits
// entirely on the fetching side: the streak engine itself stays stateless
// and recomputes everything from its inputs on every run.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/awray/streakcard/internal/github"
)

// ErrNoSnapshot is returned when no snapshot exists for a username.
var ErrNoSnapshot = errors.New("no cached snapshot — run once without --offline first")

// keepPerUser bounds how many snapshots are retained per username; older
// ones are pruned on save.
const keepPerUser = 3

// Cache wraps the snapshot database.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			events TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_username ON snapshots(username, fetched_at)`,
	}
	for _, m := range migrations {
		if _, err := c.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Save stores a snapshot of the user's fetched events and prunes old
// snapshots beyond the retention limit.
func (c *Cache) Save(username string, events []github.Event) error {
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO snapshots (id, username, fetched_at, events) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), username, time.Now().UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	// Retention: keep only the newest snapshots for this user.
	_, err = c.db.Exec(
		`DELETE FROM snapshots WHERE username = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE username = ?
			ORDER BY fetched_at DESC LIMIT ?
		)`,
		username, username, keepPerUser,
	)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot for a username along with when it
// was fetched. Returns ErrNoSnapshot when none exists.
func (c *Cache) Latest(username string) ([]github.Event, time.Time, error) {
	var payload, fetchedAt string
	err := c.db.QueryRow(
		`SELECT events, fetched_at FROM snapshots WHERE username = ?
		 ORDER BY fetched_at DESC LIMIT 1`,
		username,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("loading snapshot: %w", err)
	}

	var events []github.Event
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	when, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		when = time.Time{} // tolerate a bad timestamp, the events still matter
	}
	return events, when, nil
}
