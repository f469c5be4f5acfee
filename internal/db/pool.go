package db

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultUser     = "postgres"
	defaultMaxConns = 4
)

type NewDBPoolParams struct {
	DBHost   string
	DBPort   string
	DBName   string
	User     string
	Password string
	// MaxConns caps the pool. A single user tracker rarely needs more than a
	// handful of connections.
	MaxConns       int32
	TracingEnabled bool
}

// ConnString builds the postgres URL for params, escaping user and password.
func ConnString(params NewDBPoolParams) string {
	user := params.User
	if user == "" {
		user = defaultUser
	}
	userInfo := url.User(user)
	if params.Password != "" {
		userInfo = url.UserPassword(user, params.Password)
	}

	connURL := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     net.JoinHostPort(params.DBHost, params.DBPort),
		Path:     "/" + params.DBName,
		RawQuery: url.Values{"application_name": {"gymlog"}}.Encode(),
	}
	return connURL.String()
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(params))
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolConfig.MaxConns = params.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = defaultMaxConns
	}
	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return pool, nil
}
