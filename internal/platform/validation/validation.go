package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid es el sentinel común: errors.Is(err, ErrInvalid) vale para cualquier *Error.
var ErrInvalid = errors.New("validation error")

// Error describe la primera (o única) restricción violada.
// El mensaje se muestra tal cual al usuario que envió el formulario.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// New arma un *Error con formato estilo fmt.
func New(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// As devuelve el *Error contenido en err, si hay uno.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
