package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"github.com/nulzo/virtual-router-api/internal/store"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Resolutions() store.ResolutionRepository {
	return &resolutionRepo{db: r.db}
}

type resolutionRepo struct {
	db DB
}

func (r *resolutionRepo) Log(ctx context.Context, rec *ports.ResolutionRecord) error {
	query := `
	INSERT INTO resolution_log (
		id, virtual_model_name, provider, model_id, fallback_index,
		outcome, checks_performed, latency_ms, created_at
	) VALUES (
		:id, :virtual_model_name, :provider, :model_id, :fallback_index,
		:outcome, :checks_performed, :latency_ms, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return err
}

func (r *resolutionRepo) GetRecent(ctx context.Context, name string, limit int) ([]ports.ResolutionRecord, error) {
	var recs []ports.ResolutionRecord
	if name == "" {
		query := `SELECT * FROM resolution_log ORDER BY created_at DESC LIMIT ?`
		err := r.db.SelectContext(ctx, &recs, query, limit)
		return recs, err
	}
	query := `SELECT * FROM resolution_log WHERE virtual_model_name = ? ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &recs, query, name, limit)
	return recs, err
}

func (r *resolutionRepo) GetDailyStats(ctx context.Context, days int) ([]store.DailyStats, error) {
	var stats []store.DailyStats
	query := `
		SELECT
			DATE(created_at) as date,
			COUNT(*) as total_resolutions,
			SUM(CASE WHEN outcome = 'exhausted' THEN 1 ELSE 0 END) as exhausted,
			SUM(CASE WHEN outcome = 'cached' THEN 1 ELSE 0 END) as cache_hits,
			AVG(latency_ms) as avg_latency
		FROM resolution_log
		WHERE created_at >= DATE('now', ?)
		GROUP BY date
		ORDER BY date DESC
	`
	// SQLite date offset format is '-7 days'
	err := r.db.SelectContext(ctx, &stats, query, fmt.Sprintf("-%d days", days))
	return stats, err
}
