package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"

	"github.com/furent/furniture-rental-backend/internal/address"
	"github.com/furent/furniture-rental-backend/internal/card"
	"github.com/furent/furniture-rental-backend/internal/cart"
	"github.com/furent/furniture-rental-backend/internal/catalog"
	"github.com/furent/furniture-rental-backend/internal/config"
	"github.com/furent/furniture-rental-backend/internal/favorite"
	"github.com/furent/furniture-rental-backend/internal/notify"
	"github.com/furent/furniture-rental-backend/internal/payment"
	"github.com/furent/furniture-rental-backend/internal/rental"
	"github.com/furent/furniture-rental-backend/internal/report"
	"github.com/furent/furniture-rental-backend/internal/review"
	"github.com/furent/furniture-rental-backend/internal/store"
	"github.com/furent/furniture-rental-backend/internal/theme"
	"github.com/furent/furniture-rental-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	st, closeStore := mustOpenStore(cfg)
	defer closeStore()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// services
	userService := user.NewService(user.NewStoreRepository(st))
	catalogService := catalog.NewService(catalog.NewStoreRepository(st))
	cartService := cart.NewService(cart.NewInMemoryRepository(), catalogService)
	rentalService := rental.NewService(rental.NewStoreRepository(st), cartService)
	reviewService := review.NewService(review.NewStoreRepository(st))
	cardService, err := card.NewService(card.NewStoreRepository(st), cfg.JWTSecret)
	if err != nil {
		log.Fatalf("card service: %v", err)
	}
	paymentService := payment.NewService(payment.NewStoreRepository(st), rentalService, cardService, payment.Sandbox{})
	favoriteService := favorite.NewService(favorite.NewStoreRepository(st), catalogService)
	addressService := address.NewService(address.NewStoreRepository(st))
	themeService := theme.NewService(st)
	reportService := report.NewService(catalogService, userService, rentalService, reviewService)

	notifier := notify.New(reviewService, paymentService, cfg.PollInterval)
	notifier.Start()
	defer notifier.Close()

	// handlers
	userHandler := user.NewHandler(userService, cfg.JWTSecret)
	catalogHandler := catalog.NewHandler(catalogService)
	cartHandler := cart.NewHandler(cartService)
	rentalHandler := rental.NewHandler(rentalService, userService)
	reviewHandler := review.NewHandler(reviewService, userService)
	cardHandler := card.NewHandler(cardService)
	paymentHandler := payment.NewHandler(paymentService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	addressHandler := address.NewHandler(addressService)
	themeHandler := theme.NewHandler(themeService)
	reportHandler := report.NewHandler(reportService)
	notifyHandler := notify.NewHandler(notifier)

	// public surface
	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	// everything below carries a jwt
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	cartHandler.RegisterProtectedRoutes(app)
	rentalHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	cardHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	themeHandler.RegisterProtectedRoutes(app)
	notifyHandler.RegisterProtectedRoutes(app)

	// admin dashboard
	admin := app.Group("/admin", user.RequireAdmin)
	catalogHandler.RegisterAdminRoutes(admin)
	rentalHandler.RegisterAdminRoutes(admin)
	reportHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(app.Group("/resenas/admin", user.RequireAdmin))
	userHandler.RegisterAdminRoutes(app.Group("/api/admin", user.RequireAdmin))

	go func() {
		log.Printf("starting server on %s", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// mustOpenStore picks redis when configured, otherwise the in-memory store.
func mustOpenStore(cfg config.Config) (store.Store, func()) {
	if cfg.RedisAddr == "" {
		return store.NewMemory(), func() {}
	}
	rds := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rds.Ping(context.Background()); err != nil {
		log.Fatalf("redis unreachable at %s: %v", cfg.RedisAddr, err)
	}
	return rds, func() {
		if err := rds.Close(); err != nil {
			log.Printf("closing redis: %v", err)
		}
	}
}
