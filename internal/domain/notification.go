package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewAppointment NotificationType = "NEW_APPOINTMENT"
	NotificationStatusChange   NotificationType = "STATUS_CHANGE"
)

// NotificationEvent is the event name pushed on a user's real-time channel.
const NotificationEvent = "new-notification"

// Notification is a one-way message to a single user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	RelatedID *uuid.UUID       `json:"relatedId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// UserChannel is the per-recipient real-time channel name.
func UserChannel(userID uuid.UUID) string {
	return "private-user-" + userID.String()
}

func NewAppointmentMessage() string {
	return "A new appointment has been created by client."
}

// StatusChangeMessage phrases the message for the given side of the actor.
func StatusChangeMessage(status AppointmentStatus, actor Side) string {
	if actor == SideClient {
		return fmt.Sprintf("The client changed the appointment status to %q.", status)
	}
	return fmt.Sprintf("Your appointment status was changed to %q by the company.", status)
}
