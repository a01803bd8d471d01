package analytics

import (
	"context"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// LookupUseCase catálogos de categorías y proveedores para los formularios.
type LookupUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(analyticsRepo repository.AnalyticsRepository) *LookupUseCase {
	return &LookupUseCase{analyticsRepo: analyticsRepo}
}

// sortLocale ordena sin distinguir mayúsculas ni acentos.
// collate.Collator no es seguro para uso concurrente: uno por llamada.
func sortLocale(list []string) []string {
	if list == nil {
		return []string{}
	}
	collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics).SortStrings(list)
	return list
}

// Categories categorías distintas de artículos y materias primas.
func (uc *LookupUseCase) Categories(ctx context.Context) (*dto.CategoriesResponse, error) {
	list, err := uc.analyticsRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CategoriesResponse{Categories: sortLocale(list)}, nil
}

// Suppliers proveedores distintos y no vacíos de artículos, materias primas y compras.
func (uc *LookupUseCase) Suppliers(ctx context.Context) (*dto.SuppliersResponse, error) {
	list, err := uc.analyticsRepo.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SuppliersResponse{Suppliers: sortLocale(list)}, nil
}
