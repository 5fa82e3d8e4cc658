package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

const (
	minStepMinutes = 5
	maxStepMinutes = 24 * 60
)

func parseServiceID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: serviceId is not a valid id", ErrInvalidInput)
	}
	return id, nil
}

func parseGridRequest(req *Request, defaultStep int) (*parsedGridRequest, error) {
	serviceID, err := parseServiceID(req.ServiceID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	step := req.StepMinutes
	if step == 0 {
		step = defaultStep
	}
	if step < minStepMinutes || step > maxStepMinutes {
		return nil, fmt.Errorf("%w: step must be between %d and %d minutes", ErrInvalidInput, minStepMinutes, maxStepMinutes)
	}

	return &parsedGridRequest{
		serviceID: serviceID,
		day:       day,
		step:      time.Duration(step) * time.Minute,
	}, nil
}

func parseCheckRequest(req *CheckRequest) (uuid.UUID, time.Time, error) {
	serviceID, err := parseServiceID(req.ServiceID)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: startTime must be an RFC 3339 instant", ErrInvalidInput)
	}

	return serviceID, start.UTC(), nil
}
