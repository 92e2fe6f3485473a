package start_visit

import (
	"context"

	startVisit "github.com/m04kA/SMC-LandingBooking/internal/usecase/start_visit"
)

type StartVisitUseCase interface {
	Execute(ctx context.Context, req *startVisit.Request) (*startVisit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
