package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, cfg utils.PostgresConfig) (*Postgres, error) {
	dsn := cfg.BuildDSN()
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns >= 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg.ConnectTimeout))
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.Pool.Ping(ctx)
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	statements := []string{
		strings.Join([]string{
			"CREATE TABLE IF NOT EXISTS users (",
			"    id INTEGER PRIMARY KEY,",
			"    name TEXT NOT NULL,",
			"    username TEXT NOT NULL DEFAULT '',",
			"    email TEXT NOT NULL UNIQUE,",
			"    phone TEXT NOT NULL DEFAULT '',",
			"    website TEXT NOT NULL DEFAULT '',",
			"    address JSONB NOT NULL DEFAULT '{}'::jsonb,",
			"    company JSONB NOT NULL DEFAULT '{}'::jsonb",
			")",
		}, "\n"),
		"CREATE INDEX IF NOT EXISTS idx_users_name ON users (name)",
	}

	for _, stmt := range statements {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}

	return nil
}

const selectUserColumns = `SELECT id, name, username, email, phone, website, address, company FROM users`

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	if p == nil || p.Pool == nil {
		return nil, ErrUsersUnavailable
	}

	rows, err := p.Pool.Query(ctx, selectUserColumns+" ORDER BY id ASC")
	if err != nil {
		return nil, postgresError("list users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, postgresError("scan user", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, postgresError("iterate users", err)
	}

	return users, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int) (models.User, error) {
	if p == nil || p.Pool == nil {
		return models.User{}, ErrUsersUnavailable
	}

	user, err := scanUser(p.Pool.QueryRow(ctx, selectUserColumns+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, postgresError("get user", err)
	}

	return user, nil
}

// UpsertUsers inserts users or overwrites the existing rows with the same id.
func (p *Postgres) UpsertUsers(ctx context.Context, users []models.User) error {
	if p == nil || p.Pool == nil {
		return ErrUsersUnavailable
	}

	const query = `INSERT INTO users (id, name, username, email, phone, website, address, company)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    username = EXCLUDED.username,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    website = EXCLUDED.website,
    address = EXCLUDED.address,
    company = EXCLUDED.company`

	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(query, u.ID, u.Name, u.Username, u.Email, u.Phone, u.Website, u.Address, u.Company)
	}

	if err := p.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return postgresError("upsert users", err)
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.Website,
		&user.Address,
		&user.Company,
	)
	return user, err
}

// postgresError maps a missing users table to ErrUsersUnavailable so callers
// can fall back to another source.
func postgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("postgres: %s: %w", op, ErrUsersUnavailable)
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return 10 * time.Second
}
