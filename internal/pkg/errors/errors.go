package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal")

	// Processing failures inside the summarize pipeline. Both map to a 500
	// at the handler boundary but stay distinct kinds internally.
	ErrParse     = errors.New("document parse failed")
	ErrSummarize = errors.New("summarization service failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
