package middleware

import "time"

type Metrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
