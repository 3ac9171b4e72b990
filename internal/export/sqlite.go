package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/samestrin/drdementabase/internal/playlist"
	_ "modernc.org/sqlite"
)

// sqliteSchema holds the DDL for the catalog database. Keys are the
// normalized dedup identity; title and artist keep their display text.
const sqliteSchema = `
CREATE TABLE tracks (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    artist TEXT NOT NULL DEFAULT '',
    title_key TEXT NOT NULL,
    artist_key TEXT NOT NULL,
    first TEXT,
    plays INTEGER NOT NULL DEFAULT 0,
    UNIQUE (title_key, artist_key)
);

CREATE TABLE track_shows (
    track_id INTEGER REFERENCES tracks(id) ON DELETE CASCADE,
    air_date TEXT NOT NULL,
    PRIMARY KEY (track_id, air_date)
);

CREATE INDEX idx_tracks_first ON tracks(first);
CREATE INDEX idx_track_shows_air_date ON track_shows(air_date);
`

// SQLiteFile exports the catalog as a SQLite database with a tracks table
// and one track_shows row per air date.
type SQLiteFile struct {
	Path string
}

func openSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Write recreates the database from the records.
func (s *SQLiteFile) Write(ctx context.Context, records []playlist.TrackRecord) error {
	return withLock(s.Path, func() error {
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to replace database: %w", err)
		}

		db, err := openSQLite(s.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		trackStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tracks (title, artist, title_key, artist_key, first, plays)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer trackStmt.Close()

		showStmt, err := tx.PrepareContext(ctx, "INSERT INTO track_shows (track_id, air_date) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer showStmt.Close()

		for _, r := range records {
			titleKey, artistKey := r.Key()
			res, err := trackStmt.ExecContext(ctx, r.Title, r.Artist, titleKey, artistKey, nullableString(r.First), r.Plays())
			if err != nil {
				return fmt.Errorf("failed to insert track %q: %w", r.Title, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read track id: %w", err)
			}
			for _, d := range r.Shows {
				if _, err := showStmt.ExecContext(ctx, id, d); err != nil {
					return fmt.Errorf("failed to insert show %s: %w", d, err)
				}
			}
		}

		return tx.Commit()
	})
}

// Read loads the records back ordered by their keys.
func (s *SQLiteFile) Read(ctx context.Context) ([]playlist.TrackRecord, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var records []playlist.TrackRecord
	err := withReadLock(s.Path, func() error {
		db, err := openSQLite(s.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err = readTracks(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return normalizeRecords(records), nil
}

func readTracks(ctx context.Context, db *sql.DB) ([]playlist.TrackRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT t.id, t.title, t.artist, t.first, s.air_date
		FROM tracks t LEFT JOIN track_shows s ON s.track_id = t.id
		ORDER BY t.title_key, t.artist_key, s.air_date
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer rows.Close()

	var records []playlist.TrackRecord
	lastID := int64(-1)
	for rows.Next() {
		var (
			id            int64
			title, artist string
			first, date   sql.NullString
		)
		if err := rows.Scan(&id, &title, &artist, &first, &date); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		if id != lastID {
			records = append(records, playlist.TrackRecord{
				Title:  title,
				Artist: artist,
				Shows:  []string{},
				First:  first.String,
			})
			lastID = id
		}
		if date.Valid {
			cur := &records[len(records)-1]
			cur.Shows = append(cur.Shows, date.String)
		}
	}
	return records, rows.Err()
}

// nullableString converts empty strings to NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
