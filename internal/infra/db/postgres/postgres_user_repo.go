package postgres

import (
	"context"
	"errors"
	"fmt"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Save(ctx context.Context, u *model.User) error {
	const sql = `
INSERT INTO users (id, telegram_id, username, phone, email, short_name,
                   registered_at, last_active_at, is_admin)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
  SET username       = EXCLUDED.username,
      phone          = EXCLUDED.phone,
      email          = EXCLUDED.email,
      short_name     = EXCLUDED.short_name,
      last_active_at = EXCLUDED.last_active_at,
      is_admin       = EXCLUDED.is_admin;
`
	_, err := r.pool.Exec(ctx, sql,
		u.ID, u.TelegramID, u.Username, u.Phone, u.Email, u.ShortName,
		u.RegisteredAt, u.LastActiveAt, u.IsAdmin,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("Save user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	const sql = `
SELECT id, telegram_id, username, phone, email, short_name,
       registered_at, last_active_at, is_admin
  FROM users
 WHERE id = $1;
`
	return r.scanRow(r.pool.QueryRow(ctx, sql, id), "FindByID")
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const sql = `
SELECT id, telegram_id, username, phone, email, short_name,
       registered_at, last_active_at, is_admin
  FROM users
 WHERE telegram_id = $1;
`
	return r.scanRow(r.pool.QueryRow(ctx, sql, tgID), "FindByTelegramID")
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}

func (r *PostgresUserRepo) scanRow(row pgx.Row, op string) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.Phone, &u.Email, &u.ShortName,
		&u.RegisteredAt, &u.LastActiveAt, &u.IsAdmin,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s user: %w", op, err)
	}
	return &u, nil
}
