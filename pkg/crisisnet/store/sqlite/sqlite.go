// Package sqlite implements the post archive on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store"
)

type sqliteStore struct {
	db     *sql.DB
	closed bool
}

// Open opens (creating if needed) a SQLite archive with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent reader/writer access during collection.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close releases the database; later calls return
// internalerr.ErrStoreUnavailable.
func (s *sqliteStore) Close() error {
	s.closed = true
	return s.db.Close()
}

func (s *sqliteStore) guard() error {
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	title TEXT,
	content TEXT,
	author TEXT,
	subreddit TEXT,
	created_utc TEXT,
	score INTEGER DEFAULT 0,
	num_comments INTEGER DEFAULT 0,
	upvote_ratio REAL DEFAULT 0,
	crisis_id TEXT,
	url TEXT,
	content_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_posts_crisis ON posts(crisis_id);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_utc);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) UpsertPost(ctx context.Context, p dataset.Post) error {
	if err := s.guard(); err != nil {
		return err
	}
	if p.ID == "" {
		return nil
	}
	if p.ContentHash == "" {
		p.ContentHash = dataset.HashContent(p.Content)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO posts (id, title, content, author, subreddit, created_utc,
	score, num_comments, upvote_ratio, crisis_id, url, content_hash)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title, content=excluded.content,
	author=excluded.author, subreddit=excluded.subreddit,
	created_utc=excluded.created_utc, score=excluded.score,
	num_comments=excluded.num_comments, upvote_ratio=excluded.upvote_ratio,
	crisis_id=excluded.crisis_id, url=excluded.url,
	content_hash=excluded.content_hash`,
		p.ID, p.Title, p.Content, p.Author, p.Subreddit,
		formatTime(p.CreatedUTC), p.Score, p.NumComments, p.UpvoteRatio,
		p.CrisisID, p.URL, p.ContentHash)
	return err
}

func (s *sqliteStore) GetPost(ctx context.Context, id string) (dataset.Post, error) {
	if err := s.guard(); err != nil {
		return dataset.Post{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, content, author, subreddit, created_utc,
	score, num_comments, upvote_ratio, crisis_id, url, content_hash
FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return dataset.Post{}, fmt.Errorf("post %s: %w", id, internalerr.ErrNotFound)
	}
	return p, err
}

func (s *sqliteStore) ListPosts(ctx context.Context, crisisID string, limit int) ([]dataset.Post, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	q := `
SELECT id, title, content, author, subreddit, created_utc,
	score, num_comments, upvote_ratio, crisis_id, url, content_hash
FROM posts`
	var args []any
	if crisisID != "" {
		q += " WHERE crisis_id = ?"
		args = append(args, crisisID)
	}
	q += " ORDER BY created_utc ASC, id ASC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []dataset.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *sqliteStore) CountPosts(ctx context.Context, crisisID string) (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	q := "SELECT COUNT(*) FROM posts"
	var args []any
	if crisisID != "" {
		q += " WHERE crisis_id = ?"
		args = append(args, crisisID)
	}
	var n int
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func (s *sqliteStore) Crises(ctx context.Context) ([]string, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT crisis_id FROM posts WHERE crisis_id != '' ORDER BY crisis_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (dataset.Post, error) {
	var p dataset.Post
	var created string
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Subreddit,
		&created, &p.Score, &p.NumComments, &p.UpvoteRatio,
		&p.CrisisID, &p.URL, &p.ContentHash)
	if err != nil {
		return p, err
	}
	if created != "" {
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			p.CreatedUTC = t
		}
	}
	return p, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
