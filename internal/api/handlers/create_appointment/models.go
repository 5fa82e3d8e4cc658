package create_appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	createAppointment "github.com/iglimehmetaj/service-platform2/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID string  `json:"serviceId"`
	StartTime string  `json:"startTime"` // RFC 3339
	Notes     *string `json:"notes,omitempty"`
	ClientID  *string `json:"clientId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	ServiceID uuid.UUID       `json:"serviceId"`
	ClientID  uuid.UUID       `json:"clientId"`
	CompanyID uuid.UUID       `json:"companyId"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func (r *CreateAppointmentRequest) ToUseCaseRequest(caller *domain.Caller) *createAppointment.Request {
	return &createAppointment.Request{
		Caller:    caller,
		ServiceID: r.ServiceID,
		StartTime: r.StartTime,
		ClientID:  r.ClientID,
		Notes:     r.Notes,
	}
}

func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		ServiceID: resp.ServiceID,
		ClientID:  resp.ClientID,
		CompanyID: resp.CompanyID,
		StartTime: resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:   resp.EndTime.UTC().Format(time.RFC3339),
		Status:    string(resp.Status),
		Price:     resp.Price,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
