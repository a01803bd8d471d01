package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInactiveAccount     = errors.New("cuenta inactiva")
	ErrUsernameExists      = errors.New("el nombre de usuario ya está registrado")
	ErrEmailExists         = errors.New("el email ya está registrado")
	ErrLastAdmin           = errors.New("no se puede eliminar el último administrador")
	ErrConstraintViolation = errors.New("violación de restricción en la base de datos")

	// Libro de stock
	ErrInvalidQuantity     = errors.New("la cantidad debe ser positiva")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido: use add, remove o adjust")

	// Órdenes de compra
	ErrAlreadyReceived = errors.New("la orden de compra ya fue recibida")

	// ErrDuplicateIdentifier indica colisión del código legible (ORD-0001, …) al insertar.
	// Es transitorio: la creación se reintenta una sola vez con un código nuevo.
	ErrDuplicateIdentifier = errors.New("identificador duplicado")
)
