package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/osqelasadqw/storefront-api/internal/application/auth"
	"github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/application/usecase"
	"github.com/osqelasadqw/storefront-api/internal/infrastructure/postgres"
	infraredis "github.com/osqelasadqw/storefront-api/internal/infrastructure/redis"
	httpRouter "github.com/osqelasadqw/storefront-api/internal/interfaces/http"
	"github.com/osqelasadqw/storefront-api/pkg/config"
	"github.com/osqelasadqw/storefront-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	// Repositorios (catálogo en PostgreSQL; stock y carritos en Redis)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	promoRepo := postgres.NewPromoCodeRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockStore := infraredis.NewStockStore(redisClient)
	cartRepo := infraredis.NewCartRepository(redisClient, time.Duration(cfg.Store.CartTTLHours)*time.Hour)

	// Casos de uso y servicios
	productUC := usecase.NewProductUseCase(productRepo, stockStore, txRunner)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	promoUC := usecase.NewPromoCodeUseCase(promoRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	cartSvc := cart.NewService(
		stockStore, cartRepo, nil,
		time.Duration(cfg.Store.StockTimeoutMS)*time.Millisecond,
	)
	checkoutSvc := cart.NewCheckoutService(cartSvc, promoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		PromoUC:     promoUC,
		SettingsUC:  settingsUC,
		AuthUC:      authUC,
		CartSvc:     cartSvc,
		CheckoutSvc: checkoutSvc,
		ProductRepo: productRepo,
		JWTSecret:   cfg.JWT.Secret,
		BaseURL:     cfg.Store.BaseURL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
