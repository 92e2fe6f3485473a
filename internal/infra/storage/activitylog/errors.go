package activitylog

import "errors"

var (
	ErrBuildQuery = errors.New("activitylog.repository: failed to build query")
	ErrExecQuery  = errors.New("activitylog.repository: failed to execute query")
)
