package contact

import "github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
