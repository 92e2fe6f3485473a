package visitstore

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден или истёк
	ErrVisitNotFound = errors.New("visitstore: visit not found")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("visitstore: storage error")
)
