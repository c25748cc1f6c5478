package usecase

import (
	"context"
	"errors"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"
	"telegram-smm-storefront/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by bot and admin flows.
type UserUseCase interface {
	RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.User, error)
	GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

// RegisterOrFetch returns the existing user for tgID, refreshing username and
// last-active time, or creates a new one.
func (u *userUC) RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.RegisterOrFetch")()

	usr, err := u.users.FindByTelegramID(ctx, tgID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if !usr.IsZero() {
		if username != "" && usr.Username != username {
			usr.Username = username
		}
		usr.Touch()
		if err := u.users.Save(ctx, usr); err != nil {
			u.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to update user")
			return nil, err
		}
		return usr, nil
	}

	nu, err := model.NewUser("", tgID, username)
	if err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, nu); err != nil {
		return nil, err
	}
	u.log.Info().Int64("tg_id", tgID).Str("user_id", nu.ID).Msg("user registered")
	return nu, nil
}

func (u *userUC) GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByTelegramID")()
	return u.users.FindByTelegramID(ctx, tgID)
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	return u.users.CountUsers(ctx)
}
