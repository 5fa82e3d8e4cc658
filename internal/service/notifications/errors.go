package notifications

import "errors"

var (
	ErrUnauthorized         = errors.New("notifications: unauthorized")
	ErrInvalidInput         = errors.New("notifications: invalid input")
	ErrNotificationNotFound = errors.New("notifications: notification not found")
	ErrInternal             = errors.New("notifications: internal error")
)
