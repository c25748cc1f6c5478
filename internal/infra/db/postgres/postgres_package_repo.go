package postgres

import (
	"context"
	"fmt"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.PackageRepository = (*PostgresPackageRepo)(nil)

type PostgresPackageRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPackageRepo(pool *pgxpool.Pool) *PostgresPackageRepo {
	return &PostgresPackageRepo{pool: pool}
}

func (r *PostgresPackageRepo) Save(ctx context.Context, p *model.ServicePackage) error {
	const sql = `
INSERT INTO service_packages (id, name, service_id, platform, rate, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
  SET name       = EXCLUDED.name,
      service_id = EXCLUDED.service_id,
      platform   = EXCLUDED.platform,
      rate       = EXCLUDED.rate,
      active     = EXCLUDED.active;
`
	_, err := r.pool.Exec(ctx, sql,
		p.ID, p.Name, p.ServiceID, p.Platform, p.Rate, p.Active, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Save package: %w", err)
	}
	return nil
}

func (r *PostgresPackageRepo) FindByID(ctx context.Context, id string) (*model.ServicePackage, error) {
	const sql = `
SELECT id, name, service_id, platform, rate, active, created_at
  FROM service_packages
 WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, sql, id)
	var p model.ServicePackage
	if err := row.Scan(&p.ID, &p.Name, &p.ServiceID, &p.Platform, &p.Rate, &p.Active, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID package: %w", err)
	}
	return &p, nil
}

func (r *PostgresPackageRepo) ListByPlatform(ctx context.Context, platform string) ([]*model.ServicePackage, error) {
	const sql = `
SELECT id, name, service_id, platform, rate, active, created_at
  FROM service_packages
 WHERE platform = $1 AND active = true
 ORDER BY name;
`
	rows, err := r.pool.Query(ctx, sql, platform)
	if err != nil {
		return nil, fmt.Errorf("ListByPlatform packages: %w", err)
	}
	defer rows.Close()
	return collectPackages(rows)
}

func (r *PostgresPackageRepo) ListActive(ctx context.Context) ([]*model.ServicePackage, error) {
	const sql = `
SELECT id, name, service_id, platform, rate, active, created_at
  FROM service_packages
 WHERE active = true
 ORDER BY platform, name;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListActive packages: %w", err)
	}
	defer rows.Close()
	return collectPackages(rows)
}

// Delete deactivates a package (soft-delete) so past orders keep their
// reference data.
func (r *PostgresPackageRepo) Delete(ctx context.Context, id string) error {
	const sql = `UPDATE service_packages SET active = false WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("Delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectPackages(rows pgx.Rows) ([]*model.ServicePackage, error) {
	var out []*model.ServicePackage
	for rows.Next() {
		var p model.ServicePackage
		if err := rows.Scan(&p.ID, &p.Name, &p.ServiceID, &p.Platform, &p.Rate, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
