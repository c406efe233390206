// Package store holds all SQL. Every other package sees it through small
// interfaces declared where they are consumed.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"supermarkt/models"
)

// Querier is the part of pgx shared by *pgxpool.Pool and *pgxpool.Conn.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Store runs queries on one Querier.
type Store struct {
	db Querier
}

// New wraps db.
func New(db Querier) *Store {
	return &Store{db: db}
}

// Acquire takes one pooled connection for the duration of a request. The
// returned release func must be called on every exit path.
func Acquire(ctx context.Context, pool *pgxpool.Pool) (*Store, func(), error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: acquire connection: %w", models.ErrStorageUnavailable, err)
	}
	return New(conn), conn.Release, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", models.ErrStorageUnavailable, err)
	}
	return nil
}

// likePattern turns free text into an ILIKE substring pattern, escaping the
// LIKE wildcards so user input matches literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

func likePatterns(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, likePattern(w))
	}
	return out
}

// textArray makes sure an empty filter is sent as '{}' instead of NULL so
// cardinality checks in SQL behave.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
