package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const createStorageTable = `CREATE SCHEMA IF NOT EXISTS tracker;
CREATE TABLE IF NOT EXISTS tracker.storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

type Postgres struct {
	conn *pgxpool.Pool
}

func NewPostgres(conn *pgxpool.Pool) *Postgres {
	return &Postgres{
		conn: conn,
	}
}

// ConnectPostgres opens a pool and creates the storage table if needed.
func ConnectPostgres(ctx context.Context, endpoint string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("postgres couldn't Connect: %v", err)
	}
	if _, err = pool.Exec(ctx, createStorageTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres couldn't create storage table: %v", err)
	}
	return pool, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM tracker.storage WHERE key=$1`
	var value string
	err := p.conn.QueryRow(ctx, query, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repository.Postgres.Get key %s: %v", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO tracker.storage (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.conn.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("repository.Postgres.Set key %s: %v", key, err)
	}
	return nil
}
