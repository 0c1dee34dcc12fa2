package repository

import (
	"context"
	"errors"
	"time"

	"container_loading/internal/app/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repository distinguishes.
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
	PgErrCheckViolation      = "23514"
	PgErrNotNullViolation    = "23502"
)

type Options struct {
	// CatalogCacheTTL is how long catalog rows stay in redis. Zero disables the cache.
	CatalogCacheTTL time.Duration
	JWTKey          string
	JWTTTL          time.Duration
}

type Repository struct {
	db    *gorm.DB
	redis *redis.Client
	opts  Options
}

func New(dsn string, rdb *redis.Client, opts Options) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewWithDB(db, rdb, opts), nil
}

// NewWithDB wraps an already opened connection. rdb may be nil.
func NewWithDB(db *gorm.DB, rdb *redis.Client, opts Options) *Repository {
	if opts.JWTTTL <= 0 {
		opts.JWTTTL = 24 * time.Hour
	}
	return &Repository{
		db:    db,
		redis: rdb,
		opts:  opts,
	}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Redis() *redis.Client {
	return r.redis
}

func (r *Repository) JWTKey() string {
	return r.opts.JWTKey
}

// Ping checks the database and, when configured, redis.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperr.Persistence("ping database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Persistence("ping database", err)
	}
	if r.redis != nil {
		if err := r.redis.Ping(ctx).Err(); err != nil {
			return apperr.Persistence("ping redis", err)
		}
	}
	return nil
}

// mapError turns driver errors into the calculator's error kinds.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrForeignKeyViolation:
			return &apperr.ValidationError{Field: pgErr.ConstraintName, Reason: "references a missing row"}
		case PgErrUniqueViolation:
			return &apperr.ValidationError{Field: pgErr.ConstraintName, Reason: "already exists"}
		case PgErrCheckViolation, PgErrNotNullViolation:
			return &apperr.ValidationError{Field: pgErr.ConstraintName, Reason: pgErr.Message}
		}
	}
	return apperr.Persistence(op, err)
}
