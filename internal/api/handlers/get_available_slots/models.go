package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       string         `json:"serviceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	StepMinutes     int            `json:"stepMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.UTC().Format(time.RFC3339),
			EndTime:   s.EndTime.UTC().Format(time.RFC3339),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID.String(),
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		StepMinutes:     resp.StepMinutes,
		Slots:           slots,
	}
}
