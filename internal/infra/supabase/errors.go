package supabase

import "errors"

var (
	// ErrRequest возвращается при ошибке запроса к PostgREST
	ErrRequest = errors.New("supabase.repository: request failed")

	// ErrDecode возвращается при некорректном ответе PostgREST
	ErrDecode = errors.New("supabase.repository: failed to decode response")
)
