// file: internals/features/registration/route/registration_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	regCtl "github.com/wardix/nusafiber-reg-be/internals/features/registration/controller"
)

// RegistrationRoutes memasang endpoint registrasi di bawah group /api.
// Lookup per homepassId hanya ada di driver postgres.
func RegistrationRoutes(api fiber.Router, ctl *regCtl.RegistrationController) {
	api.Post("/register", ctl.Create)
	api.Get("/registrations", ctl.List)

	if ctl.Store.Driver() == configs.DriverPostgres {
		api.Get("/registrations/:homepassId", ctl.GetByHomepassID)
	}
}
