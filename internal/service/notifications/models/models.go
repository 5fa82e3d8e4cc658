package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

// NotificationResponse is the wire shape of a notification.
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `json:"relatedId,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		RelatedID: n.RelatedID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC(),
	}
}

func FromDomainNotifications(list []*domain.Notification, unread int) *NotificationListResponse {
	items := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, FromDomainNotification(n))
	}
	return &NotificationListResponse{Notifications: items, UnreadCount: unread}
}
