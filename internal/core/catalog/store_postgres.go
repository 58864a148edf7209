// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
	"github.com/taibuivan/yomishelf/internal/platform/database/schema"
	"github.com/taibuivan/yomishelf/internal/platform/dberr"
)

// weeklyWindowDays is the number of calendar days (today included) summed
// into [Entry.WeeklyViews].
const weeklyWindowDays = 7

// resourceManga names the entity in NOT_FOUND and CONFLICT messages.
const resourceManga = "Manga"

// # PostgreSQL Repository

// entryRepository implements the [EntryRepository] interface using pgx.
type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository constructs a PostgreSQL backed entry store.
func NewEntryRepository(pool *pgxpool.Pool) EntryRepository {
	return &entryRepository{pool: pool}
}

/*
ListEntries reads the whole active catalogue in insertion order.

Description: Weekly views are aggregated from the daily rollup in the same
round-trip through a LEFT JOIN, so titles without recent views report 0.
*/
func (repository *entryRepository) ListEntries(context context.Context) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT
			m.%s, m.%s, COALESCE(m.%s, ''), m.%s, m.%s, m.%s,
			COALESCE(SUM(d.%s) FILTER (WHERE d.%s > CURRENT_DATE - $1::int), 0) AS weekly
		FROM %s m
		LEFT JOIN %s d ON d.%s = m.%s
		WHERE m.%s IS NULL
		GROUP BY m.%s
		ORDER BY m.%s ASC, m.%s ASC
	`,
		schema.CoreManga.ID, schema.CoreManga.Title, schema.CoreManga.Image,
		schema.CoreManga.ViewCount, schema.CoreManga.Chapter, schema.CoreManga.LastUpdate,
		schema.CoreMangaViewDaily.Views, schema.CoreMangaViewDaily.Day,
		schema.CoreManga.Table,
		schema.CoreMangaViewDaily.Table, schema.CoreMangaViewDaily.MangaID, schema.CoreManga.ID,
		schema.CoreManga.DeletedAt,
		schema.CoreManga.ID,
		schema.CoreManga.CreatedAt, schema.CoreManga.ID,
	)

	rows, err := repository.pool.Query(context, query, weeklyWindowDays)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list manga: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var lastUpdate *time.Time
		if err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.Image,
			&entry.Views,
			&entry.Chapter,
			&lastUpdate,
			&entry.WeeklyViews,
		); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan manga: %w", err)
		}

		// NULL timestamps stay zero so they order as the earliest instant
		if lastUpdate != nil {
			entry.LastUpdate = *lastUpdate
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate manga: %w", err)
	}

	return entries, nil
}

// FindByID returns a single active entry without weekly aggregation.
func (repository *entryRepository) FindByID(context context.Context, id string) (*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CoreManga.ID, schema.CoreManga.Title, schema.CoreManga.Image,
		schema.CoreManga.ViewCount, schema.CoreManga.Chapter, schema.CoreManga.LastUpdate,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.CoreManga.DeletedAt,
	)

	var entry Entry
	var lastUpdate *time.Time
	err := repository.pool.QueryRow(context, query, id).Scan(
		&entry.ID,
		&entry.Title,
		&entry.Image,
		&entry.Views,
		&entry.Chapter,
		&lastUpdate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceManga)
	}

	if lastUpdate != nil {
		entry.LastUpdate = *lastUpdate
	}
	return &entry, nil
}

/*
Upsert inserts a new entry or overwrites the metadata of an existing one.

Description: A soft-deleted row is revived by the upsert. The view counter is
only written on insert; afterwards it is owned by [RecordView].
*/
func (repository *entryRepository) Upsert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = now(),
			%s = NULL
	`,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.CoreManga.Title, schema.CoreManga.Image,
		schema.CoreManga.ViewCount, schema.CoreManga.Chapter, schema.CoreManga.LastUpdate,
		schema.CoreManga.ID,
		schema.CoreManga.Title, schema.CoreManga.Title,
		schema.CoreManga.Image, schema.CoreManga.Image,
		schema.CoreManga.Chapter, schema.CoreManga.Chapter,
		schema.CoreManga.LastUpdate, schema.CoreManga.LastUpdate,
		schema.CoreManga.UpdatedAt,
		schema.CoreManga.DeletedAt,
	)

	var lastUpdate *time.Time
	if !entry.LastUpdate.IsZero() {
		lastUpdate = &entry.LastUpdate
	}

	_, err := repository.pool.Exec(context, query,
		entry.ID, entry.Title, entry.Image, entry.Views, entry.Chapter, lastUpdate,
	)
	if err != nil {
		return dberr.Wrap(err, resourceManga)
	}
	return nil
}

// SoftDelete stamps deletedat on an active entry.
func (repository *entryRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreManga.Table, schema.CoreManga.DeletedAt,
		schema.CoreManga.ID, schema.CoreManga.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete manga: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceManga)
	}
	return nil
}

/*
RecordView bumps the all-time counter and today's rollup row atomically.

Description: Both writes share one transaction so that weekly and all-time
rankings never disagree about a recorded view.
*/
func (repository *entryRepository) RecordView(context context.Context, id string, delta int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin view transaction: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	// All-time counter
	bumpQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + $2 WHERE %s = $1 AND %s IS NULL`,
		schema.CoreManga.Table,
		schema.CoreManga.ViewCount, schema.CoreManga.ViewCount,
		schema.CoreManga.ID, schema.CoreManga.DeletedAt,
	)
	tag, err := transaction.Exec(context, bumpQuery, id, delta)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceManga)
	}

	// Daily rollup feeding the weekly ranking
	rollupQuery := fmt.Sprintf(`
		INSERT INTO %s AS d (%s, %s, %s) VALUES ($1, CURRENT_DATE, $2)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = d.%s + EXCLUDED.%s
	`,
		schema.CoreMangaViewDaily.Table,
		schema.CoreMangaViewDaily.MangaID, schema.CoreMangaViewDaily.Day, schema.CoreMangaViewDaily.Views,
		schema.CoreMangaViewDaily.MangaID, schema.CoreMangaViewDaily.Day,
		schema.CoreMangaViewDaily.Views, schema.CoreMangaViewDaily.Views, schema.CoreMangaViewDaily.Views,
	)
	if _, err := transaction.Exec(context, rollupQuery, id, delta); err != nil {
		return fmt.Errorf("postgres: failed to record daily views: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit view transaction: %w", err)
	}
	return nil
}
