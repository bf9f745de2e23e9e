package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	cache "estatehub_backend/internals/caches"
	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/constants"
	database "estatehub_backend/internals/databases"
	"estatehub_backend/internals/features/uploads/storage"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
	middlewares "estatehub_backend/internals/middlewares"
	routes "estatehub_backend/internals/route"
	"estatehub_backend/internals/scheduler"
	"estatehub_backend/internals/search"
	"estatehub_backend/internals/seeds"
)

func main() {
	if err := logger.Init(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("APP_ENV"),
		ServiceName: "estatehub",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               constants.MaxUploadSize + 2*1024*1024,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	if err := database.ConnectDB(); err != nil {
		log.Fatal("database", zap.Error(err))
	}
	database.TunePool()
	database.WarmUpQueries()

	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	if configs.GetEnvBool("RUN_SEEDS", true) {
		if err := seeds.RunAll(context.Background(), database.DB); err != nil {
			log.Fatal("seed", zap.Error(err))
		}
	}

	cache.Init(context.Background())
	search.Init()

	store := storage.New(configs.UploadDir, configs.UploadBaseURL)
	if err := store.Init(); err != nil {
		log.Fatal("upload dir", zap.String("dir", configs.UploadDir), zap.Error(err))
	}

	jobs := scheduler.New(database.DB)
	if err := jobs.Register(scheduler.Jobs()); err != nil {
		log.Fatal("scheduler", zap.Error(err))
	}
	jobs.Start()

	routes.SetupRoutes(app, database.DB, store)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	jobs.Stop(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
