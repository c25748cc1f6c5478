package repository

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
)

// PackageRepository provides the service package catalog.
type PackageRepository interface {
	Save(ctx context.Context, pkg *model.ServicePackage) error
	FindByID(ctx context.Context, id string) (*model.ServicePackage, error)
	ListByPlatform(ctx context.Context, platform string) ([]*model.ServicePackage, error)
	ListActive(ctx context.Context) ([]*model.ServicePackage, error)
	Delete(ctx context.Context, id string) error
}
