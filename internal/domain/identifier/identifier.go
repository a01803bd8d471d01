// Package identifier genera los códigos legibles (ORD-0001, USR-001, …) de cada entidad.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/factory-api/internal/domain"
)

// Kind tipo de entidad con código secuencial propio.
type Kind string

const (
	KindOrder         Kind = "order"
	KindInventoryItem Kind = "inventory_item"
	KindRawMaterial   Kind = "raw_material"
	KindPurchaseOrder Kind = "purchase_order"
	KindUser          Kind = "user"
)

// MaxAttempts límite de sondeos antes de caer al código por timestamp.
const MaxAttempts = 1000

type format struct {
	prefix string
	width  int
}

var formats = map[Kind]format{
	KindOrder:         {"ORD", 4},
	KindInventoryItem: {"ITM", 4},
	KindRawMaterial:   {"MAT", 4},
	KindPurchaseOrder: {"PO", 4},
	KindUser:          {"USR", 3},
}

// Prefix devuelve el prefijo del tipo ("" si el tipo es desconocido).
func (k Kind) Prefix() string { return formats[k].prefix }

// Valid informa si el tipo tiene formato registrado.
func (k Kind) Valid() bool {
	_, ok := formats[k]
	return ok
}

// Format construye el código candidato para la secuencia n.
func Format(kind Kind, n int) string {
	f := formats[kind]
	return fmt.Sprintf("%s-%0*d", f.prefix, f.width, n)
}

// Store puerto mínimo para contar y sondear códigos existentes.
// La implementación debe estar atada a la transacción de la creación en curso.
type Store interface {
	CountCodes(ctx context.Context, kind Kind) (int, error)
	CodeExists(ctx context.Context, kind Kind, code string) (bool, error)
}

// Generator produce códigos candidatos a partir del conteo actual del almacenamiento.
type Generator struct {
	now func() time.Time
}

// NewGenerator construye el generador con el reloj del sistema.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Next calcula el siguiente código libre: conteo+1, avanzando mientras exista,
// hasta MaxAttempts. Agotado el límite devuelve PREFIX-<segundos unix>.
func (g *Generator) Next(ctx context.Context, store Store, kind Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: tipo de identificador %q", domain.ErrInvalidInput, kind)
	}
	count, err := store.CountCodes(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("count codes: %w", err)
	}
	n := count + 1
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		code := Format(kind, n)
		exists, err := store.CodeExists(ctx, kind, code)
		if err != nil {
			return "", fmt.Errorf("probe code: %w", err)
		}
		if !exists {
			return code, nil
		}
		n++
	}
	return fmt.Sprintf("%s-%d", kind.Prefix(), g.now().Unix()), nil
}

// WithRetry ejecuta un intento de creación y, si falla por colisión de código
// (domain.ErrDuplicateIdentifier), lo repite exactamente una vez.
// fn debe regenerar el código en cada intento.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || !errors.Is(err, domain.ErrDuplicateIdentifier) {
		return err
	}
	return fn(ctx)
}
