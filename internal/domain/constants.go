package domain

const (
	DefaultBookedBlockMinutes    = 60
	DefaultSlotStepMinutes       = 30
	DefaultNotificationsPageSize = 20
	MaxNotesLength               = 500
)

const DateFormat = "2006-01-02"
