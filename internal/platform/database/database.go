// Package database owns the process-wide relational store handle. The handle
// connects lazily on first use and exposes availability as an explicit error
// instead of implicit global state: callers ask for a ready *sql.DB and get
// either one or ErrUnavailable.
package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
)

// ErrUnavailable signals that the store cannot be reached. Read paths degrade
// to empty results on it; write paths surface it loudly.
var ErrUnavailable = errors.New("database not available")

// Handle is a lazily-connected database handle with an explicit lifecycle.
type Handle struct {
	mu   sync.Mutex
	cfg  config.DatabaseConfig
	db   *sql.DB
	open func(driver, dsn string) (*sql.DB, error)
}

// NewHandle prepares a handle without connecting.
func NewHandle(cfg config.DatabaseConfig) *Handle {
	return &Handle{cfg: cfg, open: sql.Open}
}

// NewHandleWithDB wraps an already-open connection, used by tests.
func NewHandleWithDB(db *sql.DB) *Handle {
	return &Handle{db: db}
}

// DB returns a ready connection, connecting on first use. It returns
// ErrUnavailable when the store is not configured or cannot be reached.
func (h *Handle) DB(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	if h.cfg.Driver == "" || h.cfg.DSN == "" {
		return nil, ErrUnavailable
	}

	db, err := h.open(h.cfg.Driver, h.cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	if h.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(h.cfg.MaxOpenConns)
	}
	if h.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(h.cfg.MaxIdleConns)
	}
	if h.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(h.cfg.ConnMaxLifetime) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Join(ErrUnavailable, err)
	}

	h.db = db
	return h.db, nil
}

// Close tears the handle down. Safe to call when never connected.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
