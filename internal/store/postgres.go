// Package store provides Postgres-backed persistence for company leader sets.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// PostgresConfig controls the connection pool used for company rows.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// pgxPool is the subset of pgxpool.Pool the gateway needs; pgxmock satisfies
// it for tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Postgres implements leadprep.Gateway over a pgx connection pool.
type Postgres struct {
	pool  pgxPool
	idGen leadprep.IDGenerator
	clock leadprep.Clock
}

// NewPostgres creates a Postgres gateway using the provided config.
func NewPostgres(ctx context.Context, cfg PostgresConfig, idGen leadprep.IDGenerator, clock leadprep.Clock) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Postgres{pool: pool, idGen: idGen, clock: clock}, nil
}

// NewPostgresWithPool constructs a gateway from an existing pool (primarily
// for testing).
func NewPostgresWithPool(pool pgxPool, idGen leadprep.IDGenerator, clock leadprep.Clock) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Postgres{pool: pool, idGen: idGen, clock: clock}, nil
}

// Close releases the underlying pool resources.
func (s *Postgres) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// Get looks up the stored company record for a domain. A missing domain is a
// cache miss (nil, nil), not an error.
func (s *Postgres) Get(ctx context.Context, domain string) (*leadprep.CompanyRecord, error) {
	var rec leadprep.CompanyRecord
	err := s.pool.QueryRow(ctx, `
SELECT id, domain, COALESCE(name, ''), COALESCE(industry, ''), created_at, updated_at
FROM companies WHERE domain = $1`, domain).
		Scan(&rec.ID, &rec.Domain, &rec.Name, &rec.Industry, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select company: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
SELECT name, title, COALESCE(source_url, '')
FROM leaders WHERE company_id = $1 ORDER BY position`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("select leaders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l leadprep.Leader
		if err := rows.Scan(&l.Name, &l.Title, &l.SourceURL); err != nil {
			return nil, fmt.Errorf("scan leader: %w", err)
		}
		rec.Leaders = append(rec.Leaders, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaders: %w", err)
	}
	return &rec, nil
}

// Put upserts the company and replaces its leader set in one transaction.
// Concurrent writes for the same domain race benignly: the leader list is an
// idempotent snapshot and the last commit wins.
func (s *Postgres) Put(ctx context.Context, domain string, leaders []leadprep.Leader) error {
	now := s.clock.Now()
	companyID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate company id: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	err = tx.QueryRow(ctx, `
INSERT INTO companies (id, domain, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (domain) DO UPDATE SET updated_at = EXCLUDED.updated_at
RETURNING id`, companyID, domain, now).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM leaders WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("clear leaders: %w", err)
	}
	for i, l := range leaders {
		leaderID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate leader id: %w", err)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO leaders (id, company_id, position, name, title, source_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			leaderID, companyID, i, l.Name, l.Title, l.SourceURL, now)
		if err != nil {
			return fmt.Errorf("insert leader: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
