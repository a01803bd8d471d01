package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/factory-api/internal/domain/identifier"
)

// IdentifierRepo cuenta y sondea códigos sobre el estado en memoria.
type IdentifierRepo struct {
	h handle
}

func codesOf(s *state, kind identifier.Kind) ([]string, error) {
	var codes []string
	switch kind {
	case identifier.KindUser:
		for _, v := range s.users {
			codes = append(codes, v.Code)
		}
	case identifier.KindOrder:
		for _, v := range s.orders {
			codes = append(codes, v.Code)
		}
	case identifier.KindInventoryItem:
		for _, v := range s.items {
			codes = append(codes, v.Code)
		}
	case identifier.KindRawMaterial:
		for _, v := range s.materials {
			codes = append(codes, v.Code)
		}
	case identifier.KindPurchaseOrder:
		for _, v := range s.pos {
			codes = append(codes, v.Code)
		}
	default:
		return nil, fmt.Errorf("tipo de identificador desconocido: %q", kind)
	}
	return codes, nil
}

// CountCodes cuenta las entidades del tipo.
func (r *IdentifierRepo) CountCodes(_ context.Context, kind identifier.Kind) (int, error) {
	var (
		n   int
		err error
	)
	r.h.read(func(s *state) {
		var codes []string
		codes, err = codesOf(s, kind)
		n = len(codes)
	})
	return n, err
}

// CodeExists informa si el código ya está en uso.
func (r *IdentifierRepo) CodeExists(_ context.Context, kind identifier.Kind, code string) (bool, error) {
	var (
		found bool
		err   error
	)
	r.h.read(func(s *state) {
		var codes []string
		codes, err = codesOf(s, kind)
		for _, c := range codes {
			if c == code {
				found = true
				return
			}
		}
	})
	return found, err
}
