package create_appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

// Request carries raw input; parsing happens in validation so that
// authentication and role errors take precedence over malformed fields.
type Request struct {
	Caller    *domain.Caller
	ServiceID string
	StartTime string
	// ClientID lets a super admin book on behalf of a client.
	ClientID *string
	Notes    *string
}

type Response struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	ClientID  uuid.UUID
	CompanyID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    domain.AppointmentStatus
	Price     decimal.Decimal
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type parsedRequest struct {
	serviceID uuid.UUID
	clientID  *uuid.UUID
	startTime time.Time
	notes     *string
}
