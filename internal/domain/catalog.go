package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering of a company.
type Service struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	CategoryID      *uuid.UUID
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// Duration returns the service length; zero or negative durations are rejected by NewSlot.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type Company struct {
	ID       uuid.UUID
	Name     string
	Location *string
}

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	CompanyID *uuid.UUID
}
