package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Archive 把每次运行的 Digest 写入 Postgres，只写不读
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// Open 连接数据库并初始化表结构
func Open(ctx context.Context, dsn string) (*Archive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a := &Archive{db: db, now: time.Now}
	if err := a.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return a, nil
}

// Close 关闭连接
func (a *Archive) Close() error {
	return a.db.Close()
}

// Name 推送渠道名
func (a *Archive) Name() string { return "postgres" }

func (a *Archive) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS digest_runs (
			id SERIAL PRIMARY KEY,
			item_count INTEGER NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS digest_items (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES digest_runs(id),
			category TEXT NOT NULL,
			rank INTEGER NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			source TEXT,
			tier TEXT,
			published_at TIMESTAMPTZ,
			score INTEGER,
			region TEXT,
			item_type TEXT,
			impact_level TEXT,
			summary TEXT,
			potential_impact TEXT,
			action_suggestion TEXT,
			analysis_state TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := a.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

// Deliver 在一个事务中写入本次运行及其条目
func (a *Archive) Deliver(ctx context.Context, digest model.Digest) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := psql.Insert("digest_runs").
		Columns("item_count", "created_at").
		Values(digest.Total(), a.now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	var runID int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&runID); err != nil {
		return fmt.Errorf("failed to insert digest run: %w", err)
	}

	if digest.Total() > 0 {
		query, args, err = itemsInsert(runID, digest).ToSql()
		if err != nil {
			return fmt.Errorf("build items insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert digest items: %w", err)
		}
	}

	return tx.Commit()
}

// itemsInsert 所有条目一次写入，rank 为分类内从 1 开始的名次
func itemsInsert(runID int, digest model.Digest) sq.InsertBuilder {
	b := psql.Insert("digest_items").Columns(
		"run_id", "category", "rank", "title", "link", "source", "tier", "published_at",
		"score", "region", "item_type", "impact_level", "summary", "potential_impact",
		"action_suggestion", "analysis_state",
	)
	for _, c := range model.Categories {
		for rank, item := range digest[c] {
			b = b.Values(
				runID, string(c), rank+1, item.Title, item.Link, item.SourceName, string(item.SourceTier), item.PublishedAt,
				item.Score, item.Region, item.Type, string(item.Analysis.ImpactLevel), item.Analysis.Summary,
				item.Analysis.PotentialImpact, item.Analysis.ActionSuggestion, string(item.State),
			)
		}
	}
	return b
}
