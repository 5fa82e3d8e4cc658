package realtime

import "errors"

var (
	ErrMarshal   = errors.New("realtime: failed to marshal message")
	ErrPublish   = errors.New("realtime: failed to publish message")
	ErrSubscribe = errors.New("realtime: failed to subscribe")
)
