package health

import "context"

// Check именованная проверка зависимости
type Check struct {
	Name  string
	Check func(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
