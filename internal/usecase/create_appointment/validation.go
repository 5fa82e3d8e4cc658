package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

func validateCaller(caller *domain.Caller) error {
	if caller == nil || caller.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if !caller.Role.Permissions().CanBook {
		return fmt.Errorf("%w: role %q", ErrForbidden, caller.Role)
	}
	return nil
}

func parseRequest(req *Request) (*parsedRequest, error) {
	serviceIDStr := strings.TrimSpace(req.ServiceID)
	startTimeStr := strings.TrimSpace(req.StartTime)

	if serviceIDStr == "" || startTimeStr == "" {
		return nil, fmt.Errorf("%w: serviceId and startTime are required", ErrInvalidInput)
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: serviceId is not a valid id", ErrInvalidInput)
	}

	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime is not a valid RFC 3339 instant", ErrInvalidInput)
	}

	parsed := &parsedRequest{
		serviceID: serviceID,
		startTime: startTime.UTC(),
	}

	if req.ClientID != nil && strings.TrimSpace(*req.ClientID) != "" {
		clientID, err := uuid.Parse(strings.TrimSpace(*req.ClientID))
		if err != nil {
			return nil, fmt.Errorf("%w: clientId is not a valid id", ErrInvalidInput)
		}
		parsed.clientID = &clientID
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if len([]rune(notes)) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		if notes != "" {
			parsed.notes = &notes
		}
	}

	return parsed, nil
}
