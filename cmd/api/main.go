package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nortia/backoffice/config"
	"github.com/nortia/backoffice/internal/auth"
	authHandler "github.com/nortia/backoffice/internal/auth/handler"
	authRepository "github.com/nortia/backoffice/internal/auth/repository"
	authUseCase "github.com/nortia/backoffice/internal/auth/usecase"
	categoryHandler "github.com/nortia/backoffice/internal/category/handler"
	categoryRepository "github.com/nortia/backoffice/internal/category/repository"
	categoryUseCase "github.com/nortia/backoffice/internal/category/usecase"
	customerHandler "github.com/nortia/backoffice/internal/customer/handler"
	customerRepository "github.com/nortia/backoffice/internal/customer/repository"
	customerUseCase "github.com/nortia/backoffice/internal/customer/usecase"
	"github.com/nortia/backoffice/internal/notifier"
	orderHandler "github.com/nortia/backoffice/internal/order/handler"
	orderRepository "github.com/nortia/backoffice/internal/order/repository"
	orderUseCase "github.com/nortia/backoffice/internal/order/usecase"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/cache"
	"github.com/nortia/backoffice/internal/pkg/logger"
	"github.com/nortia/backoffice/internal/pkg/postgres"
	"github.com/nortia/backoffice/internal/pkg/search"
	productHandler "github.com/nortia/backoffice/internal/product/handler"
	productRepository "github.com/nortia/backoffice/internal/product/repository"
	productUseCase "github.com/nortia/backoffice/internal/product/usecase"
	promotionHandler "github.com/nortia/backoffice/internal/promotion/handler"
	promotionRepository "github.com/nortia/backoffice/internal/promotion/repository"
	promotionUseCase "github.com/nortia/backoffice/internal/promotion/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	log := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer log.Sync()

	log.Info("starting backoffice api", zap.String("env", cfg.Server.AppEnv))

	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("redis unavailable, list caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		log.Warn("elasticsearch unavailable, product search falls back to sql", zap.Error(err))
		esClient = nil
	}

	var notifiers notifier.Multi
	if cfg.SMTP.Enabled {
		notifiers = append(notifiers, notifier.NewMailer(notifier.MailerConfig{
			Host:         cfg.SMTP.Host,
			Port:         cfg.SMTP.Port,
			Username:     cfg.SMTP.Username,
			Password:     cfg.SMTP.Password,
			FromAddress:  cfg.SMTP.FromAddress,
			OperatorAddr: cfg.SMTP.OperatorAddr,
		}, log))
	}
	if cfg.Kafka.Enabled {
		publisher := notifier.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}
	var orderNotifier notifier.Notifier
	if len(notifiers) > 0 {
		orderNotifier = notifiers
	}

	authRepo := authRepository.NewPGRepository(db)
	categoryRepo := categoryRepository.NewPGRepository(db)
	productRepo := productRepository.NewPGRepository(db)
	promotionRepo := promotionRepository.NewPGRepository(db)
	customerRepo := customerRepository.NewPGRepository(db)
	orderRepo := orderRepository.NewPGRepository(db)

	tokenTTL := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	authUC := authUseCase.NewAuthUseCase(authRepo, cfg.JWT.SecretKey, tokenTTL, log)
	categoryUC := categoryUseCase.NewCategoryUseCase(categoryRepo, log)
	productUC := productUseCase.NewProductUseCase(productRepo, redisClient, esClient, cfg.Catalog.VariantsEnabled, log)
	promotionUC := promotionUseCase.NewPromotionUseCase(promotionRepo, log)
	customerUC := customerUseCase.NewCustomerUseCase(customerRepo, log)
	orderUC := orderUseCase.NewOrderUseCase(orderRepo, orderNotifier, cfg.Catalog.VariantsEnabled, log)

	authH := authHandler.NewAuthHandler(authUC, log)
	categoryH := categoryHandler.NewCategoryHandler(categoryUC, log)
	productH := productHandler.NewProductHandler(productUC, log)
	promotionH := promotionHandler.NewPromotionHandler(promotionUC, log)
	customerH := customerHandler.NewCustomerHandler(customerUC, log)
	orderH := orderHandler.NewOrderHandler(orderUC, log)

	app := fiber.New(fiber.Config{
		AppName:      "backoffice",
		ErrorHandler: errorHandler(log),
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes are mounted at the root; the paths are the public contract.
	api := app.Group("")

	required := auth.Required(cfg.JWT.SecretKey)
	admin := auth.Admin(authRepo)
	optional := auth.Optional(cfg.JWT.SecretKey, authRepo)

	api.Post("/auth/login", authH.Login)
	api.Get("/auth/me", required, authH.Me)

	// Public catalog. Admins on the same routes see hidden fields.
	api.Get("/products", optional, productH.List)
	api.Get("/products/:id", optional, productH.Get)
	api.Get("/categories", categoryH.List)
	api.Get("/categories/:id", categoryH.Get)

	// Order intake is public, everything else about orders is back office.
	api.Post("/orders", orderH.Create)

	api.Post("/products", required, admin, productH.Create)
	api.Put("/products/:id", required, admin, productH.Update)
	api.Patch("/products/:id", required, admin, productH.Update)
	api.Delete("/products/:id", required, admin, productH.Delete)

	api.Get("/products/:id/promotions", required, admin, promotionH.List)
	api.Post("/products/:id/promotions", required, admin, promotionH.Create)
	api.Patch("/products/:id/promotions/:promoId", required, admin, promotionH.Update)
	api.Delete("/products/:id/promotions/:promoId", required, admin, promotionH.Delete)

	api.Post("/categories", required, admin, categoryH.Create)
	api.Patch("/categories/:id", required, admin, categoryH.Update)
	api.Delete("/categories/:id", required, admin, categoryH.Delete)

	api.Get("/customers", required, admin, customerH.List)
	api.Get("/customers/:id", required, admin, customerH.Get)

	api.Get("/orders", required, admin, orderH.List)
	api.Get("/orders/export/csv", required, admin, orderH.ExportCSV)
	api.Get("/orders/:id", required, admin, orderH.Get)
	api.Patch("/orders/:id/status", required, admin, orderH.SetStatus)
	api.Patch("/orders/:id/note", required, admin, orderH.UpdateNotes)
	api.Delete("/orders/:id", required, admin, orderH.Delete)

	go func() {
		if err := app.Listen(cfg.Server.HTTPPort); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// errorHandler maps application errors to HTTP responses. Internal causes
// are logged, never returned to the client.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr := apperror.As(err); appErr != nil {
			status := apperror.HTTPStatus(appErr)
			if status >= 500 {
				log.Error("request failed",
					zap.String("path", c.Path()),
					zap.Error(appErr),
				)
			}
			body := fiber.Map{"error": appErr.Message}
			if len(appErr.Fields) > 0 {
				body["fields"] = appErr.Fields
			}
			return c.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if e, ok := err.(*fiber.Error); ok {
			fiberErr = e
		}
		if fiberErr != nil {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
