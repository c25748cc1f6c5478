package model

import (
	"time"

	"telegram-smm-storefront/internal/domain"

	"github.com/google/uuid"
)

// User is a domain entity representing a Telegram user of the storefront.
// Phone, Email and ShortName are filled by the login/profile flows and stay
// empty until those flows complete.
type User struct {
	ID           string
	TelegramID   int64
	Username     string
	Phone        string
	Email        string
	ShortName    string
	RegisteredAt time.Time
	LastActiveAt time.Time
	IsAdmin      bool
}

func NewUser(id string, tgID int64, username string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:           id,
		TelegramID:   tgID,
		Username:     username,
		RegisteredAt: time.Now(),
		LastActiveAt: time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }

// LoggedIn reports whether the login flow has been completed.
func (u *User) LoggedIn() bool { return u != nil && u.Phone != "" && u.Email != "" }
