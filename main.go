package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	database "github.com/wardix/nusafiber-reg-be/internals/databases"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
	middlewares "github.com/wardix/nusafiber-reg-be/internals/middlewares"
	routes "github.com/wardix/nusafiber-reg-be/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		// dua file 5 MiB + field form harus muat
		BodyLimit: 16 * 1024 * 1024,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 Store sesuai driver; gagal init = fatal
	var st storage.RegistrationStore
	switch cfg.StorageDriver {
	case configs.DriverFile:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("❌ Gagal menyiapkan file store: %v", err)
		}
		st = fs
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		database.TunePool(db)
		database.WarmUp(db)

		ps, err := storage.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("❌ Gagal migrasi tabel registrations: %v", err)
		}
		st = ps
	}
	log.Printf("✅ Storage driver: %s", st.Driver())

	// ✅ Routes
	routes.SetupRoutes(app, st, cfg)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := st.Close(); err != nil {
		log.Printf("store close err: %v", err)
	}
}
