package repository

import "github.com/jhoicas/factory-api/internal/domain/identifier"

// IdentifierRepository cuenta y sondea códigos legibles por tipo de entidad.
// Debe usarse atado a la transacción de la creación.
type IdentifierRepository interface {
	identifier.Store
}
