package update_appointment_status

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

func validateCaller(caller *domain.Caller) error {
	if caller == nil || caller.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if !caller.Role.IsValid() {
		return fmt.Errorf("%w: role %q", ErrForbidden, caller.Role)
	}
	return nil
}

func parseRequest(req *Request) (*parsedRequest, error) {
	id, err := uuid.Parse(strings.TrimSpace(req.AppointmentID))
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id is not a valid id", ErrInvalidInput)
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized status %q", ErrInvalidInput, req.Status)
	}

	return &parsedRequest{appointmentID: id, status: status}, nil
}
