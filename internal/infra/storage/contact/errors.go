package contact

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("contact.repository: failed to build query")

	// ErrScanRow возвращается при ошибке выполнения запроса или сканирования результата
	ErrScanRow = errors.New("contact.repository: failed to scan row")
)
