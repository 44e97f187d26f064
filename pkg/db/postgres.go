package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carhub/catalog-service/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Postgres is the process-wide database handle. Connection establishment is
// lazy: the first caller of Get dials the server and every later caller
// reuses the same live *sqlx.DB. A failed attempt is not cached, so the next
// request retries instead of pinning the process to a dead handle.
type Postgres struct {
	cfg config.PostgresConfig

	mu sync.Mutex
	db *sqlx.DB
}

func NewPostgres(cfg config.PostgresConfig) *Postgres {
	return &Postgres{cfg: cfg}
}

func (p *Postgres) Get(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.cfg.Host, p.cfg.Port, p.cfg.User, p.cfg.Password, p.cfg.DBName, p.cfg.SSLMode)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(p.cfg.MaxOpenConns)
	db.SetMaxIdleConns(p.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(p.cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(p.cfg.ConnMaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.ConnectTimeout)*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p.db = db
	return p.db, nil
}

// Ping backs the health probe.
func (p *Postgres) Ping(ctx context.Context) error {
	db, err := p.Get(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the handle on shutdown.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
