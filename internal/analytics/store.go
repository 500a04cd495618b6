// Package analytics implements the local OLAP side of moment-extraction
// analytics: a DuckDB table of per-moment statistics, periodically
// exported to Parquet for offline analysis. Pure read-side enrichment;
// failures here are logged and swallowed, never gate the critical path.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/parquet-go/parquet-go"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// MomentStat is one row of the moment_stats analytics table.
type MomentStat struct {
	TranscriptID string    `parquet:"transcript_id"`
	Topic        string    `parquet:"topic"`
	Speaker      string    `parquet:"speaker"`
	Tone         string    `parquet:"tone"`
	Score        float64   `parquet:"score"`
	CreatedAt    time.Time `parquet:"created_at"`
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, apperrors.NewStoreError("open duckdb analytics store", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS moment_stats (
		transcript_id VARCHAR,
		topic VARCHAR,
		speaker VARCHAR,
		tone VARCHAR,
		score DOUBLE,
		created_at TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, apperrors.NewStoreError("create moment_stats table", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordMoments appends one analytics row per moment. Never called on
// the critical extraction path without the caller logging-and-swallowing
// on error.
func (s *Store) RecordMoments(ctx context.Context, stats []MomentStat) error {
	for _, st := range stats {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO moment_stats (transcript_id, topic, speaker, tone, score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			st.TranscriptID, st.Topic, st.Speaker, st.Tone, st.Score, st.CreatedAt,
		); err != nil {
			return apperrors.NewStoreError("insert moment stat", err)
		}
	}
	return nil
}

// ExportParquet dumps the full moment_stats table to a timestamped
// Parquet file under dir, for offline analysis by tools outside this
// service.
func (s *Store) ExportParquet(ctx context.Context, dir string, at time.Time) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT transcript_id, topic, speaker, tone, score, created_at FROM moment_stats`)
	if err != nil {
		return "", apperrors.NewStoreError("query moment_stats for export", err)
	}
	defer rows.Close()

	var stats []MomentStat
	for rows.Next() {
		var st MomentStat
		if err := rows.Scan(&st.TranscriptID, &st.Topic, &st.Speaker, &st.Tone, &st.Score, &st.CreatedAt); err != nil {
			return "", apperrors.NewStoreError("scan moment_stats row", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return "", apperrors.NewStoreError("iterate moment_stats rows", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("moment_stats_%s.parquet", at.UTC().Format("20060102T150405")))
	if err := parquet.WriteFile(path, stats); err != nil {
		return "", apperrors.NewStoreError("write parquet export", err)
	}
	return path, nil
}
