package dict

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists lookup results in a local sqlite database. It doubles
// as the lookup history shown in the TUI.
type Cache struct {
	db *sql.DB
}

// HistoryItem is one cached lookup, newest first in Recent.
type HistoryItem struct {
	Keyword    string
	Entries    []Entry
	HitCount   int
	LookedUpAt time.Time
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS lookups (
	keyword      TEXT PRIMARY KEY,
	payload      TEXT NOT NULL,
	hit_count    INTEGER NOT NULL DEFAULT 1,
	looked_up_at TIMESTAMP NOT NULL
);
`

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached entries for keyword. The boolean reports whether
// the keyword was cached; a cached empty result is still a hit.
func (c *Cache) Get(keyword string) ([]Entry, bool, error) {
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM lookups WHERE keyword = ?`, keyword,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, false, fmt.Errorf("decoding cached payload: %w", err)
	}

	// Bump the hit count; failure here doesn't invalidate the hit.
	c.db.Exec(`UPDATE lookups SET hit_count = hit_count + 1 WHERE keyword = ?`, keyword)

	return entries, true, nil
}

// Put stores the entries for keyword, replacing any previous result.
func (c *Cache) Put(keyword string, entries []Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO lookups (keyword, payload, hit_count, looked_up_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(keyword) DO UPDATE SET
			payload = excluded.payload,
			looked_up_at = excluded.looked_up_at`,
		keyword, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Recent returns up to limit cached lookups, most recent first.
func (c *Cache) Recent(limit int) ([]HistoryItem, error) {
	rows, err := c.db.Query(
		`SELECT keyword, payload, hit_count, looked_up_at
		 FROM lookups ORDER BY looked_up_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		var payload string
		if err := rows.Scan(&item.Keyword, &payload, &item.HitCount, &item.LookedUpAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &item.Entries); err != nil {
			// Skip rows with unreadable payloads rather than failing the list.
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return items, nil
}
