// file: internals/route/routes.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	regCtl "github.com/wardix/nusafiber-reg-be/internals/features/registration/controller"
	regRoutes "github.com/wardix/nusafiber-reg-be/internals/features/registration/route"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/service"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
	helper "github.com/wardix/nusafiber-reg-be/internals/helpers"
)

func SetupRoutes(app *fiber.App, st storage.RegistrationStore, cfg configs.Config) {
	// banner + daftar endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Nusafiber Registration API",
			"driver":  st.Driver(),
			"endpoints": []string{
				"GET  /api/health",
				"POST /api/register",
				"GET  /api/registrations",
				"GET  /api/registrations/:homepassId",
			},
		})
	})

	log.Println("[INFO] Setting up RegistrationRoutes...")
	api := app.Group("/api")

	healthCtl := regCtl.NewHealthController(st)
	api.Get("/health", healthCtl.Health)

	ctl := regCtl.NewRegistrationController(st, service.NewUploadService(cfg.UploadDir), nil)
	regRoutes.RegistrationRoutes(api, ctl)

	// dokumen tersimpan bisa diambil balik
	app.Static("/uploads", cfg.UploadDir)

	// fallback 404 untuk route tak dikenal
	app.Use(func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	})
}
