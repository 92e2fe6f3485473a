package events

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events: failed to publish event")
)
