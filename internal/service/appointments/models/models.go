package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

const MaxPageSize = 100

// ListAppointmentsRequest is scoped by the caller's role. Limit zero returns everything.
type ListAppointmentsRequest struct {
	Caller *domain.Caller
	Status *string
	Page   int
	Limit  int
}

type ServiceInfo struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ClientInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type CompanyInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location *string   `json:"location,omitempty"`
}

// AppointmentResponse is an appointment with its joined projections.
type AppointmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	StartTime time.Time       `json:"startTime"`
	EndTime   *time.Time      `json:"endTime"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Service   ServiceInfo     `json:"service"`
	Client    ClientInfo      `json:"client"`
	Company   CompanyInfo     `json:"company"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page,omitempty"`
	Limit        int                   `json:"limit,omitempty"`
}

// BookedSlotResponse is one occupied range of a service.
type BookedSlotResponse struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

func FromDomainAppointmentDetails(d *domain.AppointmentDetails) AppointmentResponse {
	var end *time.Time
	if d.EndTime != nil {
		utc := d.EndTime.UTC()
		end = &utc
	}
	return AppointmentResponse{
		ID:        d.ID,
		StartTime: d.StartTime.UTC(),
		EndTime:   end,
		Status:    string(d.Status),
		Price:     d.Price,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		Service: ServiceInfo{
			ID:    d.ServiceID,
			Name:  d.ServiceName,
			Price: d.ServicePrice,
		},
		Client: ClientInfo{
			ID:    d.ClientID,
			Name:  d.ClientName,
			Email: d.ClientEmail,
		},
		Company: CompanyInfo{
			ID:       d.CompanyID,
			Name:     d.CompanyName,
			Location: d.CompanyLocation,
		},
	}
}

func FromDomainAppointmentList(list []*domain.AppointmentDetails) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainAppointmentDetails(d))
	}
	return result
}

func FromDomainBookedSlots(slots []domain.BookedSlot) []BookedSlotResponse {
	result := make([]BookedSlotResponse, 0, len(slots))
	for _, s := range slots {
		var end *time.Time
		if s.EndTime != nil {
			utc := s.EndTime.UTC()
			end = &utc
		}
		result = append(result, BookedSlotResponse{StartTime: s.StartTime.UTC(), EndTime: end})
	}
	return result
}
