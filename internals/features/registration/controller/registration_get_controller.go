// file: internals/features/registration/controller/registration_get_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
	helper "github.com/wardix/nusafiber-reg-be/internals/helpers"
)

/* ============================ LIST ============================ */
// List menangani GET /api/registrations. Driver postgres mendukung
// ?page=&limit= (1-indexed, default page 1 / limit 50); driver file selalu
// mengembalikan seluruh isi log.
func (ctl *RegistrationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 0)

	items, total, err := ctl.Store.List(reqCtx(c), p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data registrasi")
	}

	if ctl.Store.Driver() == configs.DriverFile {
		return helper.JsonList(c, items, len(items))
	}
	return helper.JsonListPaged(c, items, len(items), total, p)
}

/* ============================ DETAIL ============================ */
// GetByHomepassID menangani GET /api/registrations/:homepassId (driver
// postgres saja; route tidak dipasang untuk driver file).
func (ctl *RegistrationController) GetByHomepassID(c *fiber.Ctx) error {
	homepassID := strings.TrimSpace(c.Params("homepassId"))

	rec, err := ctl.Store.GetByHomepassID(reqCtx(c), homepassID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrUnsupported) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}
