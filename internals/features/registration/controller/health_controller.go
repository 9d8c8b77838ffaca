// file: internals/features/registration/controller/health_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
)

type HealthController struct {
	Store     storage.RegistrationStore
	StartedAt time.Time
}

func NewHealthController(st storage.RegistrationStore) *HealthController {
	return &HealthController{Store: st, StartedAt: time.Now()}
}

// Health menangani GET /api/health. Driver postgres ikut nge-ping DB dan
// balas 503 kalau probe gagal; driver file selalu sehat.
func (h *HealthController) Health(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    int(time.Since(h.StartedAt).Seconds()),
	}
	httpStatus := fiber.StatusOK

	if h.Store.Driver() == configs.DriverPostgres {
		if err := h.Store.Ping(reqCtx(c)); err != nil {
			resp["status"] = "DOWN"
			resp["database"] = "disconnected"
			httpStatus = fiber.StatusServiceUnavailable
		} else {
			resp["database"] = "connected"
		}
	}

	return c.Status(httpStatus).JSON(resp)
}
