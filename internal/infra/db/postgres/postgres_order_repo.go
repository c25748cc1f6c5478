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
var _ repository.OrderRepository = (*PostgresOrderRepo)(nil)

type PostgresOrderRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{pool: pool}
}

const orderColumns = `id, telegram_id, platform, service_id, package_name, package_rate,
       link, quantity, coupon_code, amount, status, created_at`

func (r *PostgresOrderRepo) Save(ctx context.Context, o *model.Order) error {
	const sql = `
INSERT INTO orders (id, telegram_id, platform, service_id, package_name, package_rate,
                    link, quantity, coupon_code, amount, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`
	_, err := r.pool.Exec(ctx, sql,
		o.ID, o.TelegramID, o.Platform, o.ServiceID, o.PackageName, o.PackageRate,
		o.Link, o.Quantity, o.CouponCode, o.Amount, o.Status, o.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("Save order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1;`
	row := r.pool.QueryRow(ctx, sql, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID order: %w", err)
	}
	return o, nil
}

func (r *PostgresOrderRepo) ListByTelegramID(ctx context.Context, tgID int64, limit int) ([]*model.Order, error) {
	sql := `SELECT ` + orderColumns + `
  FROM orders
 WHERE telegram_id = $1
 ORDER BY created_at DESC
 LIMIT $2;`
	rows, err := r.pool.Query(ctx, sql, tgID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListByTelegramID orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresOrderRepo) ListRecent(ctx context.Context, limit int) ([]*model.Order, error) {
	sql := `SELECT ` + orderColumns + `
  FROM orders
 ORDER BY created_at DESC
 LIMIT $1;`
	rows, err := r.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	const sql = `UPDATE orders SET status = $2 WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, sql, id, status)
	if err != nil {
		return fmt.Errorf("UpdateStatus order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(
		&o.ID, &o.TelegramID, &o.Platform, &o.ServiceID, &o.PackageName, &o.PackageRate,
		&o.Link, &o.Quantity, &o.CouponCode, &o.Amount, &o.Status, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*model.Order, error) {
	var out []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
