package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrScope el principal no puede actuar en el tenant (sin empresa, empresa inactiva o ajena).
	ErrScope = errors.New("fuera del alcance del tenant")
	// ErrForbidden el rol no tiene permiso para la acción o el estado actual.
	ErrForbidden = errors.New("acceso denegado")
	// ErrIllegalTransition el estado destino no es alcanzable desde el estado actual.
	ErrIllegalTransition = errors.New("transición no permitida")
	// ErrAudit fallo interno del registro de auditoría; nunca se propaga al llamador.
	ErrAudit = errors.New("fallo al registrar auditoría")

	// ErrDuplicate es un error de validación: campo único repetido.
	ErrDuplicate = fmt.Errorf("%w: recurso duplicado", ErrInvalidInput)
)

// Invalid construye un error de validación con detalle.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
