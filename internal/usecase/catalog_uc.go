package usecase

import (
	"context"
	"sort"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"
	"telegram-smm-storefront/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CatalogUseCase exposes the service package catalog to the bot menus and
// the admin API.
type CatalogUseCase interface {
	Platforms(ctx context.Context) []string
	ListByPlatform(ctx context.Context, platform string) ([]*model.ServicePackage, error)
	ListActive(ctx context.Context) ([]*model.ServicePackage, error)
	Get(ctx context.Context, id string) (*model.ServicePackage, error)
	Save(ctx context.Context, pkg *model.ServicePackage) error
	Delete(ctx context.Context, id string) error
}

type catalogUC struct {
	packages repository.PackageRepository
	log      *zerolog.Logger
}

func NewCatalogUseCase(packages repository.PackageRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{packages: packages, log: logger}
}

// Platforms returns the supported platform identifiers in stable order.
func (c *catalogUC) Platforms(_ context.Context) []string {
	out := model.Platforms()
	sort.Strings(out)
	return out
}

func (c *catalogUC) ListByPlatform(ctx context.Context, platform string) ([]*model.ServicePackage, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.ListByPlatform")()
	return c.packages.ListByPlatform(ctx, platform)
}

func (c *catalogUC) ListActive(ctx context.Context) ([]*model.ServicePackage, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.ListActive")()
	return c.packages.ListActive(ctx)
}

func (c *catalogUC) Get(ctx context.Context, id string) (*model.ServicePackage, error) {
	return c.packages.FindByID(ctx, id)
}

func (c *catalogUC) Save(ctx context.Context, pkg *model.ServicePackage) error {
	defer logging.TraceDuration(c.log, "CatalogUC.Save")()
	return c.packages.Save(ctx, pkg)
}

func (c *catalogUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(c.log, "CatalogUC.Delete")()
	return c.packages.Delete(ctx, id)
}
