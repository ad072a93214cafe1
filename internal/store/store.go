package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("entry not found")

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite database at dbPath. The parent
// directory must already exist.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

// Open is New for CLI use: it creates the parent directory of dbPath first.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return New(dbPath)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		model_id TEXT NOT NULL DEFAULT '',
		protected BOOLEAN NOT NULL DEFAULT FALSE,
		translated_text TEXT NOT NULL,
		word_count INTEGER DEFAULT 0,
		usage_count INTEGER DEFAULT 1,
		invalidated BOOLEAN DEFAULT FALSE,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_lang, target_lang, model_id, protected)
	);

	-- glossary holds term pairs exported as forced glossaries for custom models
	CREATE TABLE IF NOT EXISTS glossary (
		id TEXT PRIMARY KEY,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		source_term TEXT NOT NULL,
		target_term TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_lang, target_lang, source_term)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON translation_memory(source_text, source_lang, target_lang, model_id, protected);
	CREATE INDEX IF NOT EXISTS idx_glossary_lookup ON glossary(source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// MemoryKey identifies a cached translation. ModelID may be empty when the
// service picked the model from the language pair. Protected marks output
// produced with placeholders masked.
type MemoryKey struct {
	SourceText string
	SourceLang string
	TargetLang string
	ModelID    string
	Protected  bool
}

func (k MemoryKey) normalized() MemoryKey {
	k.SourceText = normalizeText(k.SourceText)
	k.SourceLang = strings.ToLower(strings.TrimSpace(k.SourceLang))
	k.TargetLang = strings.ToLower(strings.TrimSpace(k.TargetLang))
	k.ModelID = strings.TrimSpace(k.ModelID)
	return k
}

// MemoryEntry is a row from the translation_memory table.
type MemoryEntry struct {
	ID             string    `json:"id"`
	SourceText     string    `json:"source_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	ModelID        string    `json:"model_id"`
	Protected      bool      `json:"protected"`
	TranslatedText string    `json:"translated_text"`
	WordCount      int       `json:"word_count"`
	UsageCount     int       `json:"usage_count"`
	Invalidated    bool      `json:"invalidated"`
	LastUsed       time.Time `json:"last_used"`
}

// CacheStats summarises translation memory usage.
type CacheStats struct {
	TotalEntries   int `json:"total_entries"`
	ActiveEntries  int `json:"active_entries"`
	InvalidEntries int `json:"invalid_entries"`
	TotalUsage     int `json:"total_usage"`
	TotalWords     int `json:"total_words"`
}

func (s *Store) GetCachedTranslation(ctx context.Context, key MemoryKey) (string, bool, error) {
	k := key.normalized()

	var translated string
	var invalidated bool
	err := s.db.QueryRowContext(ctx,
		`SELECT translated_text, invalidated FROM translation_memory WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND model_id = ? AND protected = ?`,
		k.SourceText, k.SourceLang, k.TargetLang, k.ModelID, k.Protected).Scan(&translated, &invalidated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if invalidated {
		return "", false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND model_id = ? AND protected = ?`,
		time.Now(), k.SourceText, k.SourceLang, k.TargetLang, k.ModelID, k.Protected)

	return translated, true, err
}

func (s *Store) SaveToMemory(ctx context.Context, key MemoryKey, translatedText string, wordCount int) error {
	k := key.normalized()
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translation_memory (id, source_text, source_lang, target_lang, model_id, protected, translated_text, word_count, usage_count, invalidated, last_used, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, FALSE, ?, ?)`,
		"mem_"+uuid.NewString(), k.SourceText, k.SourceLang, k.TargetLang, k.ModelID, k.Protected, translatedText, wordCount, now, now)
	return err
}

func (s *Store) InvalidateMemory(ctx context.Context, id string) error {
	return s.execOne(ctx, `UPDATE translation_memory SET invalidated = TRUE WHERE id = ?`, id)
}

// DeleteMemory permanently removes a translation memory entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM translation_memory WHERE id = ?`, id)
}

// ClearMemory removes all translation memory entries.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListMemory returns all translation memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, source_lang, target_lang, model_id, protected, translated_text, word_count, usage_count, invalidated, last_used FROM translation_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.ModelID, &e.Protected, &e.TranslatedText, &e.WordCount, &e.UsageCount, &e.Invalidated, &e.LastUsed); err != nil {
			return nil, err
		}
		results = append(results, e)
	}

	return results, rows.Err()
}

// Stats returns summary statistics for the translation memory.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN NOT invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(usage_count), 0),
			COALESCE(SUM(word_count), 0)
		FROM translation_memory`).Scan(
		&stats.TotalEntries,
		&stats.ActiveEntries,
		&stats.InvalidEntries,
		&stats.TotalUsage,
		&stats.TotalWords,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GlossaryEntry represents a row in the glossary table.
type GlossaryEntry struct {
	ID         string    `json:"id"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	SourceTerm string    `json:"source_term"`
	TargetTerm string    `json:"target_term"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddGlossaryTerm inserts or replaces a glossary entry and returns its ID.
func (s *Store) AddGlossaryTerm(ctx context.Context, sourceLang, targetLang, sourceTerm, targetTerm string) (string, error) {
	id := "gl_" + uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO glossary (id, source_lang, target_lang, source_term, target_term)
		 VALUES (?, ?, ?, ?, ?)`,
		id, strings.ToLower(sourceLang), strings.ToLower(targetLang), sourceTerm, targetTerm)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListGlossaryTerms returns all glossary entries, optionally filtered by language
// pair (pass empty strings to return everything).
func (s *Store) ListGlossaryTerms(ctx context.Context, sourceLang, targetLang string) ([]GlossaryEntry, error) {
	query := `SELECT id, source_lang, target_lang, source_term, target_term, created_at FROM glossary`
	var args []interface{}

	sourceLang, targetLang = strings.ToLower(sourceLang), strings.ToLower(targetLang)
	switch {
	case sourceLang != "" && targetLang != "":
		query += ` WHERE source_lang = ? AND target_lang = ?`
		args = append(args, sourceLang, targetLang)
	case sourceLang != "":
		query += ` WHERE source_lang = ?`
		args = append(args, sourceLang)
	case targetLang != "":
		query += ` WHERE target_lang = ?`
		args = append(args, targetLang)
	}
	query += ` ORDER BY source_lang, target_lang, source_term`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []GlossaryEntry
	for rows.Next() {
		var e GlossaryEntry
		if err := rows.Scan(&e.ID, &e.SourceLang, &e.TargetLang, &e.SourceTerm, &e.TargetTerm, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteGlossaryTerm removes a glossary entry by ID.
func (s *Store) DeleteGlossaryTerm(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM glossary WHERE id = ?`, id)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) execOne(ctx context.Context, query string, id string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent cache key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
