package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrBranchRequired  = errors.New("el usuario debe tener una sucursal asignada")
	ErrBranchHasAssets = errors.New("la sucursal todavía tiene activos asociados")
)

// FieldError asocia un error de dominio a un campo concreto del formulario.
// Ej: serial_number duplicado -> FieldError{Field: "serial_number", Err: ErrDuplicate}.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Message != "" {
		return e.Field + ": " + e.Message
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewDuplicateError construye el error de unicidad para un campo.
func NewDuplicateError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message, Err: ErrDuplicate}
}

// ValidationError agrupa los errores por campo de un formulario rechazado.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add registra el mensaje de un campo (el primero gana).
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty indica si no hay errores registrados.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil devuelve nil si no hay errores, útil al final de una validación.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FieldErrors normaliza cualquier error de validación/unicidad a un mapa campo -> mensaje.
// Devuelve nil si el error no es de ese tipo.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		msg := fe.Message
		if msg == "" {
			msg = fe.Err.Error()
		}
		return map[string]string{fe.Field: msg}
	}
	return nil
}
