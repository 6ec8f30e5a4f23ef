package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"student-registry/internal/config"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrUnavailable marks any failure to establish the database connection.
var ErrUnavailable = errors.New("database connection failed")

// MigrateFunc prepares the schema on a freshly opened connection.
type MigrateFunc func(ctx context.Context, db *bun.DB) error

// Session is the single shared handle to the backing store. The connection is
// dialed lazily on first use; concurrent first callers converge on one connect
// attempt and share its outcome, success or failure.
type Session struct {
	cfg     config.DatabaseConfig
	migrate MigrateFunc

	once sync.Once
	db   *bun.DB
	err  error
}

func NewSession(cfg config.DatabaseConfig, migrate MigrateFunc) *Session {
	return &Session{cfg: cfg, migrate: migrate}
}

// NewSessionWithDB wraps an already-open connection (useful for testing).
func NewSessionWithDB(db *bun.DB) *Session {
	s := &Session{}
	s.once.Do(func() { s.db = db })
	return s
}

// DB returns the shared connection, dialing it on first call.
func (s *Session) DB(ctx context.Context) (*bun.DB, error) {
	s.once.Do(func() {
		s.db, s.err = s.connect(ctx)
	})
	if s.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, s.err)
	}
	return s.db, nil
}

func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Session) connect(ctx context.Context) (*bun.DB, error) {
	sslMode := s.cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		s.cfg.User,
		s.cfg.Password,
		s.cfg.Host,
		s.cfg.Port,
		s.cfg.DBName,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	configurePool(db, s.cfg)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if s.migrate != nil {
		if err := s.migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	slog.Info("database connected successfully")
	return db, nil
}

func configurePool(db *bun.DB, cfg config.DatabaseConfig) {
	sqlDB := db.DB

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxIdleConns(maxIdle)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 300
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 60
	}
	sqlDB.SetConnMaxIdleTime(time.Duration(connMaxIdleTime) * time.Second)
}

// CreateTables runs create-if-not-exists for the given models.
func CreateTables(ctx context.Context, db *bun.DB, models ...interface{}) error {
	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model: %w", err)
		}
	}
	return nil
}
