// Package seed crea los usuarios por defecto y el juego de datos de ejemplo.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/logger"
)

// Registrar alta de usuarios (implementado por auth.AuthUseCase).
type Registrar interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
}

// Passwords contraseñas iniciales de los usuarios por defecto.
type Passwords struct {
	Admin   string
	Manager string
}

// Result cantidades insertadas por SampleData.
type Result struct {
	Items          int `json:"items"`
	Materials      int `json:"raw_materials"`
	Orders         int `json:"orders"`
	PurchaseOrders int `json:"purchase_orders"`
}

// Seeder arranque de usuarios y datos de ejemplo.
type Seeder struct {
	registrar Registrar
	txRunner  repository.TxRunner
	generator *identifier.Generator
	log       *logger.Logger
	now       func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(registrar Registrar, txRunner repository.TxRunner, generator *identifier.Generator, log *logger.Logger) *Seeder {
	return &Seeder{registrar: registrar, txRunner: txRunner, generator: generator, log: log, now: time.Now}
}

// EnsureDefaultUsers crea admin y manager si no existen. Los existentes no se modifican.
func (s *Seeder) EnsureDefaultUsers(ctx context.Context, pw Passwords) error {
	defaults := []dto.RegisterRequest{
		{
			Username: "admin", Email: "admin@factory.com", Password: pw.Admin,
			FullName: "System Administrator", Role: entity.RoleAdmin, Department: "Management",
		},
		{
			Username: "manager", Email: "manager@factory.com", Password: pw.Manager,
			FullName: "Factory Manager", Role: entity.RoleManager, Department: "Operations",
		},
	}
	for _, in := range defaults {
		u, err := s.registrar.RegisterUser(ctx, in)
		switch {
		case errors.Is(err, domain.ErrUsernameExists), errors.Is(err, domain.ErrEmailExists):
			continue
		case err != nil:
			return err
		}
		s.log.Info().Str("username", u.Username).Str("user_id", u.Code).Msg("usuario por defecto creado")
	}
	return nil
}

// SampleData inserta el juego de ejemplo en las tablas vacías, todo en una transacción.
// createdBy queda como autor de órdenes y compras (vacío = sin autor).
func (s *Seeder) SampleData(ctx context.Context, createdBy string) (*Result, error) {
	res := &Result{}
	err := s.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		now := s.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		items, err := repos.Items.List(ctx, repository.StockFilter{})
		if err != nil {
			return err
		}
		if len(items) == 0 {
			for _, it := range sampleItems() {
				if it.Code, err = s.generator.Next(ctx, repos.Identifiers, identifier.KindInventoryItem); err != nil {
					return err
				}
				it.ID, it.CreatedAt, it.UpdatedAt = uuid.New().String(), now, now
				if err := repos.Items.Create(ctx, it); err != nil {
					return err
				}
				res.Items++
			}
		}

		materials, err := repos.Materials.List(ctx, repository.StockFilter{})
		if err != nil {
			return err
		}
		if len(materials) == 0 {
			for _, m := range sampleMaterials() {
				if m.Code, err = s.generator.Next(ctx, repos.Identifiers, identifier.KindRawMaterial); err != nil {
					return err
				}
				m.ID, m.CreatedAt, m.UpdatedAt = uuid.New().String(), now, now
				if err := repos.Materials.Create(ctx, m); err != nil {
					return err
				}
				res.Materials++
			}
		}

		orders, err := repos.Orders.List(ctx, repository.OrderFilter{})
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			for _, o := range sampleOrders(today) {
				if o.Code, err = s.generator.Next(ctx, repos.Identifiers, identifier.KindOrder); err != nil {
					return err
				}
				o.ID, o.CreatedBy, o.CreatedAt, o.UpdatedAt = uuid.New().String(), createdBy, now, now
				o.RecalculateTotal()
				if err := repos.Orders.Create(ctx, o); err != nil {
					return err
				}
				res.Orders++
			}
		}

		pos, err := repos.PurchaseOrders.List(ctx, repository.PurchaseOrderFilter{})
		if err != nil {
			return err
		}
		if len(pos) == 0 {
			for _, po := range samplePurchaseOrders(today) {
				if po.Code, err = s.generator.Next(ctx, repos.Identifiers, identifier.KindPurchaseOrder); err != nil {
					return err
				}
				po.ID, po.CreatedBy, po.CreatedAt = uuid.New().String(), createdBy, now
				po.RecalculateTotal()
				if err := repos.PurchaseOrders.Create(ctx, po); err != nil {
					return err
				}
				res.PurchaseOrders++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("items", res.Items).
		Int("raw_materials", res.Materials).
		Int("orders", res.Orders).
		Int("purchase_orders", res.PurchaseOrders).
		Msg("datos de ejemplo cargados")
	return res, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func sampleItems() []*entity.InventoryItem {
	return []*entity.InventoryItem{
		{
			Name: "Finished Product A", Category: "Finished Goods", CurrentStock: d("150"), MinLevel: d("50"), MaxLevel: d("500"),
			Unit: "pieces", UnitCost: dp("25.50"), Supplier: "ABC Manufacturing", Location: "Warehouse A",
			Description: "High-quality finished product A",
		},
		{
			Name: "Finished Product B", Category: "Finished Goods", CurrentStock: d("30"), MinLevel: d("50"), MaxLevel: d("300"),
			Unit: "pieces", UnitCost: dp("35.75"), Supplier: "XYZ Corp", Location: "Warehouse B",
			Description: "Premium finished product B",
		},
		{
			Name: "Component X", Category: "Components", CurrentStock: d("200"), MinLevel: d("100"), MaxLevel: d("1000"),
			Unit: "pieces", UnitCost: dp("5.25"), Supplier: "Component Supplies Ltd", Location: "Warehouse C",
			Description: "Standard component X",
		},
	}
}

func sampleMaterials() []*entity.RawMaterial {
	return []*entity.RawMaterial{
		{
			Name: "Steel Sheets", Category: "Metals", CurrentStock: d("500"), MinLevel: d("100"), Unit: "kg",
			UnitPrice: d("15.00"), Supplier: "Steel Supplies Inc", Description: "High-grade steel sheets",
		},
		{
			Name: "Plastic Pellets", Category: "Plastics", CurrentStock: d("200"), MinLevel: d("150"), Unit: "kg",
			UnitPrice: d("8.50"), Supplier: "Polymer Solutions", Description: "Industrial plastic pellets",
		},
		{
			Name: "Aluminum Bars", Category: "Metals", CurrentStock: d("300"), MinLevel: d("100"), Unit: "kg",
			UnitPrice: d("22.00"), Supplier: "Metal Works Co", Description: "Extruded aluminum bars",
		},
	}
}

func sampleOrders(today time.Time) []*entity.Order {
	return []*entity.Order{
		{
			CustomerName: "Acme Corporation", Product: "Finished Product A", Quantity: 100, UnitPrice: dp("30.00"),
			Status: entity.OrderStatusProcessing, Priority: entity.PriorityHigh, Deadline: today.AddDate(0, 0, 7),
			SpecialInstructions: "Rush order - handle with care",
		},
		{
			CustomerName: "Global Industries", Product: "Finished Product B", Quantity: 50, UnitPrice: dp("40.00"),
			Status: entity.OrderStatusYetToProcess, Priority: entity.PriorityMedium, Deadline: today.AddDate(0, 0, 14),
		},
	}
}

func samplePurchaseOrders(today time.Time) []*entity.PurchaseOrder {
	return []*entity.PurchaseOrder{
		{
			MaterialName: "Steel Sheets", Category: "Metals", Quantity: d("1000"), Unit: "kg", UnitPrice: d("15.00"),
			Supplier: "Steel Supplies Inc", OrderDate: today, ExpectedDelivery: today.AddDate(0, 0, 10),
			Status: entity.PurchaseOrderOrdered, Notes: "Quarterly steel order",
		},
	}
}
