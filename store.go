package pubfront

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/pubfront/tagcount"
)

// Store wraps a SQLite database and provides read access to blog posts.
// The schema is shared with the publishing side that writes the posts.
type Store struct {
	db *sql.DB
}

const postColumns = `slug, title, date, tags, summary, content, published`

// schema is compatible with databases written by the publishing side: the
// published column was added later, so older files get it via ALTER TABLE.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		tags TEXT NOT NULL,
		summary TEXT NOT NULL,
		content TEXT NOT NULL,
		published INTEGER NOT NULL DEFAULT 1
	)`,
	`ALTER TABLE posts ADD COLUMN published INTEGER NOT NULL DEFAULT 1`,
	`CREATE INDEX IF NOT EXISTS posts_published_date ON posts (published, date DESC)`,
}

// NewStore opens (or creates) the SQLite database at path and brings its
// schema up to date.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("pubfront: create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("pubfront: open %s: %w", path, err)
	}
	// Readers wait on the writer instead of failing with SQLITE_BUSY.
	pragmas := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	}
	for _, q := range pragmas {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, fmt.Errorf("pubfront: %s: %w", q, err)
		}
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pubfront: migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil && !isDuplicateColumn(err) {
			return err
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column")
}

func scanPosts(rows *sql.Rows) ([]BlogPost, error) {
	defer rows.Close()
	var posts []BlogPost
	for rows.Next() {
		var slug, title, date, tags, summary, content string
		var published int
		if err := rows.Scan(&slug, &title, &date, &tags, &summary, &content, &published); err != nil {
			return nil, err
		}
		posts = append(posts, newPost(slug, title, date, tags, summary, content, published))
	}
	return posts, rows.Err()
}

func newPost(slug, title, date, tags, summary, content string, published int) BlogPost {
	return BlogPost{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Content:   content,
		Path:      "blog/" + slug,
		Published: published == 1,
	}
}

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]BlogPost, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug`)
	} else {
		normalizedTag := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug`, normalizedTag)
	}
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// GetPost returns a single published post by slug, or sql.ErrNoRows.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE slug = ? AND published = 1`, slug)
	if err != nil {
		return BlogPost{}, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return BlogPost{}, err
	}
	if len(posts) == 0 {
		return BlogPost{}, sql.ErrNoRows
	}
	return posts[0], nil
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	counts, err := s.CountTags()
	if err != nil {
		return nil, err
	}
	result := make([]string, len(counts))
	for i, c := range counts {
		result[i] = c.Tag
	}
	sort.Strings(result)
	return result, nil
}

// CountTags returns every tag of a published post with the number of posts
// carrying it, most used first. Ties are ordered by name.
func (s *Store) CountTags() ([]tagcount.Count, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		seen := make(map[string]struct{})
		for _, t := range ParseTags(tags) {
			t = strings.ToLower(t)
			if _, dup := seen[t]; dup || t == "" {
				continue
			}
			seen[t] = struct{}{}
			counts[t]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]tagcount.Count, 0, len(counts))
	for t, n := range counts {
		result = append(result, tagcount.Count{Tag: t, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	return result, nil
}

// SavePost upserts a blog post. Tags are normalized to lowercase.
func (s *Store) SavePost(p BlogPost) error {
	normalizedTags := make([]string, 0, len(p.Tags))
	for _, t := range FilterEmpty(p.Tags) {
		normalizedTags = append(normalizedTags, strings.ToLower(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (slug, title, date, tags, summary, content, published) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, tagString, p.Summary, p.Content, published)
	return err
}

// DeletePost removes a post by slug. Deleting a missing post is not an error.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
