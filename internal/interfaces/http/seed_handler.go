package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/activity"
	"github.com/jhoicas/factory-api/internal/application/seed"
)

// SeedHandler carga de datos de ejemplo (admin).
type SeedHandler struct {
	seeder   *seed.Seeder
	recorder *activity.Recorder
}

// NewSeedHandler construye el handler.
func NewSeedHandler(seeder *seed.Seeder, recorder *activity.Recorder) *SeedHandler {
	return &SeedHandler{seeder: seeder, recorder: recorder}
}

// SeedData godoc
// @Summary      Cargar datos de ejemplo (admin)
// @Description  Solo inserta en las tablas vacías.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  seed.Result
// @Router       /api/seed-data [post]
func (h *SeedHandler) SeedData(c *fiber.Ctx) error {
	res, err := h.seeder.SampleData(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionSampleDataSeeded, "Sample data seeded", c.IP())
	return c.JSON(fiber.Map{"message": "datos de ejemplo cargados", "inserted": res})
}
