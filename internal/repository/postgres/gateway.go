package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// ErrMissingDSN indicates the gateway was constructed without a connection string.
var ErrMissingDSN = fmt.Errorf("database connection string is not configured")

const pingTimeout = 5 * time.Second

// Gateway owns the single process-wide database handle. Connect is lazy,
// idempotent, and single-flight: concurrent first calls share one dial attempt
// and later calls return the already-open handle.
type Gateway struct {
	dsn string

	once sync.Once
	db   *sql.DB
	err  error
}

// NewGateway returns a Gateway for the given connection string. No connection
// is opened until Connect is called.
func NewGateway(dsn string) *Gateway {
	return &Gateway{dsn: dsn}
}

// Connect opens the database handle on first use and returns it on every
// subsequent call. A failed first attempt is sticky; the process is expected
// to restart rather than retry with the same misconfiguration.
func (g *Gateway) Connect(ctx context.Context) (*sql.DB, error) {
	g.once.Do(func() {
		g.db, g.err = g.open(ctx)
	})
	return g.db, g.err
}

func (g *Gateway) open(ctx context.Context) (*sql.DB, error) {
	dsn := strings.TrimSpace(g.dsn)
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Close closes the underlying handle if one was opened.
func (g *Gateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}
