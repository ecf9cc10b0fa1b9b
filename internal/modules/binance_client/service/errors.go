package service

import "github.com/pkg/errors"

// TransportError — сеть/HTTP: не дозвонились, таймаут или не-2xx.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError — ответ пришёл, но форма не та, что мы ждём.
type DecodeError struct{ Err error }

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

func transportf(format string, args ...any) error {
	return &TransportError{Err: errors.Errorf(format, args...)}
}

func decodef(format string, args ...any) error {
	return &DecodeError{Err: errors.Errorf(format, args...)}
}
