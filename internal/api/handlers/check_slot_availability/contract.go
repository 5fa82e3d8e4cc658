package check_slot_availability

import (
	"context"

	getAvailableSlots "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
)

type SlotChecker interface {
	CheckSlot(ctx context.Context, req *getAvailableSlots.CheckRequest) (*getAvailableSlots.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
