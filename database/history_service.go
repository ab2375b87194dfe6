package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generation is one file written by a deck generation run
type Generation struct {
	ID         string `json:"id"`
	RunID      string `json:"runId"`
	Format     string `json:"format"`
	OutputPath string `json:"outputPath"`
	SlideCount int    `json:"slideCount"`
	SizeBytes  int64  `json:"sizeBytes"`
	SHA256     string `json:"sha256"`
	Lang       string `json:"lang"`
	CreatedAt  int64  `json:"createdAt"`
}

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 20

// HistoryService records and lists generated files
type HistoryService struct {
	db *sql.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *sql.DB) *HistoryService {
	return &HistoryService{
		db: db,
	}
}

// Record stores a generation, filling in the ID, language and timestamp when unset
func (s *HistoryService) Record(ctx context.Context, g Generation) (*Generation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if g.RunID == "" {
		return nil, fmt.Errorf("runID is required")
	}
	if g.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Lang == "" {
		g.Lang = "en"
	}
	if g.CreatedAt == 0 {
		g.CreatedAt = time.Now().UnixMilli()
	}

	query := `
		INSERT INTO generations (id, run_id, format, output_path, slide_count, size_bytes, sha256, lang, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		g.ID, g.RunID, g.Format, g.OutputPath, g.SlideCount, g.SizeBytes, g.SHA256, g.Lang, g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert generation: %w", err)
	}

	return &g, nil
}

// List returns the most recent generations, newest first
func (s *HistoryService) List(ctx context.Context, limit int) ([]Generation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, run_id, format, output_path, slide_count, size_bytes, sha256, lang, created_at
		FROM generations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	return s.query(ctx, query, limit)
}

// ListRun returns the files written by one run in insertion order
func (s *HistoryService) ListRun(ctx context.Context, runID string) ([]Generation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, run_id, format, output_path, slide_count, size_bytes, sha256, lang, created_at
		FROM generations
		WHERE run_id = ?
		ORDER BY rowid
	`
	return s.query(ctx, query, runID)
}

func (s *HistoryService) query(ctx context.Context, query string, args ...any) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.RunID, &g.Format, &g.OutputPath, &g.SlideCount, &g.SizeBytes, &g.SHA256, &g.Lang, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}
	return out, nil
}
