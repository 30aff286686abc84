package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/tesloshop/catalog-api/internal/api"
	"github.com/tesloshop/catalog-api/internal/core/service"
	"github.com/tesloshop/catalog-api/internal/infrastructure/config"
	"github.com/tesloshop/catalog-api/internal/infrastructure/db/mysql"
	"github.com/tesloshop/catalog-api/internal/infrastructure/db/redis"
	"github.com/tesloshop/catalog-api/internal/infrastructure/queue"
	"github.com/tesloshop/catalog-api/internal/infrastructure/storage"
	"github.com/tesloshop/catalog-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; a missing secret must still abort loudly.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := mysql.Open(ctx, mysql.Config{
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connection failed")
	}
	defer db.Close()

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	users := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cache := redis.NewProductCache(rdb, log)

	authService := service.NewAuthService(users, tokens, cfg.BcryptCost, log)
	productService := service.NewProductService(productRepo, cache, log)
	seedService := service.NewSeedService(users, productService, cfg.BcryptCost, log)

	auditor := queue.NewAuditDispatcher(0, log)
	auditor.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:          db,
		Redis:       rdb,
		Users:       users,
		AuthService: authService,
		Products:    productService,
		Tokens:      tokens,
		Storage:     files,
		Seeder:      seedService,
		Auditor:     auditor,
		BaseURL:     "http://localhost:" + cfg.Port,
		Logger:      log,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("catalog api listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
