package update_appointment_status

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	updateStatus "github.com/iglimehmetaj/service-platform2/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ServiceID      uuid.UUID       `json:"serviceId"`
	ClientID       uuid.UUID       `json:"clientId"`
	CompanyID      uuid.UUID       `json:"companyId"`
	StartTime      string          `json:"startTime"`
	EndTime        *string         `json:"endTime"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previousStatus"`
	Price          decimal.Decimal `json:"price"`
	Notes          *string         `json:"notes,omitempty"`
	UpdatedAt      string          `json:"updatedAt"`
}

func FromUseCaseResponse(resp *updateStatus.Response) *AppointmentResponse {
	a := resp.Appointment

	var end *string
	if a.EndTime != nil {
		formatted := a.EndTime.UTC().Format(time.RFC3339)
		end = &formatted
	}

	return &AppointmentResponse{
		ID:             a.ID,
		ServiceID:      a.ServiceID,
		ClientID:       a.ClientID,
		CompanyID:      a.CompanyID,
		StartTime:      a.StartTime.UTC().Format(time.RFC3339),
		EndTime:        end,
		Status:         string(a.Status),
		PreviousStatus: string(resp.PreviousStatus),
		Price:          a.Price,
		Notes:          a.Notes,
		UpdatedAt:      a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
