// Package store provides best-effort SQLite caching of fetched articles
// and computed bias records. Cache failures are never fatal to a
// recommendation request; durability is not guaranteed.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ebrowne/newslens/internal/bias"
	"github.com/ebrowne/newslens/internal/news"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating tables as
// needed. Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all pooled connections see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		source_name TEXT NOT NULL,
		published_at DATETIME NOT NULL,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source_name);

	CREATE TABLE IF NOT EXISTS bias_records (
		url TEXT PRIMARY KEY,
		combined_bias REAL NOT NULL,
		category TEXT NOT NULL,
		source_bias REAL NOT NULL,
		content_bias REAL NOT NULL,
		sentiment TEXT NOT NULL,
		confidence REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveArticles caches articles, returning the count of new rows.
// Duplicates (by URL) are silently ignored.
func (s *Store) SaveArticles(articles []news.Article) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(articles) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO articles (
			url, title, description, image_url, source_name, published_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	newCount := 0
	for _, a := range articles {
		result, err := stmt.Exec(a.URL, a.Title, a.Description, a.ImageURL, a.Source.Name, a.PublishedAt, now)
		if err != nil {
			return newCount, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}
	return newCount, nil
}

// RecentArticles returns the most recently published cached articles.
func (s *Store) RecentArticles(limit int) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT url, title, description, image_url, source_name, published_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var a news.Article
		if err := rows.Scan(&a.URL, &a.Title, &a.Description, &a.ImageURL, &a.Source.Name, &a.PublishedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// SaveBias caches a computed bias record for an article URL.
func (s *Store) SaveBias(url string, rec bias.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO bias_records (url, combined_bias, category, source_bias, content_bias, sentiment, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			combined_bias = excluded.combined_bias,
			category = excluded.category,
			source_bias = excluded.source_bias,
			content_bias = excluded.content_bias,
			sentiment = excluded.sentiment,
			confidence = excluded.confidence
	`, url, rec.CombinedBias, string(rec.Category), rec.SourceBias, rec.ContentBias, string(rec.Sentiment), rec.Confidence)
	return err
}

// GetBias returns the cached bias record for an article URL, if present.
func (s *Store) GetBias(url string) (bias.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec bias.Record
	var category, sentiment string
	err := s.db.QueryRow(`
		SELECT combined_bias, category, source_bias, content_bias, sentiment, confidence
		FROM bias_records WHERE url = ?
	`, url).Scan(&rec.CombinedBias, &category, &rec.SourceBias, &rec.ContentBias, &sentiment, &rec.Confidence)
	if err == sql.ErrNoRows {
		return bias.Record{}, false, nil
	}
	if err != nil {
		return bias.Record{}, false, err
	}

	rec.Category = bias.Category(category)
	rec.Sentiment = bias.Sentiment(sentiment)
	return rec, true, nil
}
