package model

import (
	"time"

	"telegram-smm-storefront/internal/domain"
)

// ServicePackage is a purchasable offering: a service on a platform with a
// human-authored rate string such as "₹1000 per 1000" or "₹100 per 1K".
// Packages are reference data; they never change during a conversation.
type ServicePackage struct {
	ID        string
	Name      string
	ServiceID string
	Platform  string
	Rate      string
	Active    bool
	CreatedAt time.Time
}

func (p *ServicePackage) IsZero() bool { return p == nil || p.ID == "" }

// NewServicePackage validates and constructs a package.
func NewServicePackage(id, name, serviceID, platform, rate string) (*ServicePackage, error) {
	if id == "" || name == "" || serviceID == "" || rate == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !KnownPlatform(platform) {
		return nil, domain.ErrInvalidArgument
	}
	return &ServicePackage{
		ID:        id,
		Name:      name,
		ServiceID: serviceID,
		Platform:  platform,
		Rate:      rate,
		Active:    true,
		CreatedAt: time.Now(),
	}, nil
}
