package ipprovider

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ipprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("ipprovider client: invalid response")

	// ErrNoAddress возвращается, когда ответ не содержит корректного IP
	ErrNoAddress = errors.New("ipprovider client: response has no ip address")
)
