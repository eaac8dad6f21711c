package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/kardexlab/inventory-api/docs"
	"github.com/kardexlab/inventory-api/internal/api/handler"
	"github.com/kardexlab/inventory-api/internal/api/middleware"
	"github.com/kardexlab/inventory-api/internal/core/service"
	"github.com/kardexlab/inventory-api/internal/infrastructure/config"
	mongodb "github.com/kardexlab/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kardexlab/inventory-api/internal/infrastructure/db/redis"
	"github.com/kardexlab/inventory-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the last-access recorder, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Recorder) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)

	hasher := service.NewBcryptHasher()
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TokenTTL)
	authService := service.NewAuthService(userRepo, roleRepo, hasher, tokens)
	adminService := service.NewUserAdminService(userRepo, roleRepo, hasher)
	productService := service.NewProductService(productRepo, inventoryRepo)
	inventoryService := service.NewInventoryService(productRepo, inventoryRepo)

	throttle := redisdb.NewAccessThrottle(rdb)
	recorder := queue.NewRecorder(0, userRepo, throttle, log)

	// Identity resolution runs on every request; guards run per route.
	policies := middleware.NewPolicyRegistry()
	e.Use(middleware.Identity(tokens, userRepo, policies, recorder))

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewUserAdminHandler(adminService)
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	// route registers a handler under an access policy: the policy registry
	// feeds the identity middleware, the guard enforces at dispatch.
	route := func(method, path string, access middleware.Access, h echo.HandlerFunc) {
		policies.Tag(method, path, access)
		e.Add(method, path, h, middleware.Require(access))
	}

	// --- Auth routes ---
	route(echo.POST, "/api/auth/register", middleware.Anonymous, authHandler.Register)
	route(echo.POST, "/api/auth/login", middleware.Anonymous, authHandler.Login)
	route(echo.GET, "/api/auth/profile", middleware.Authenticated, authHandler.Profile)
	route(echo.PUT, "/api/auth/password", middleware.Authenticated, authHandler.ChangePassword)

	// --- Admin user/role management ---
	route(echo.GET, "/api/auth/users", middleware.Admin, adminHandler.ListUsers)
	route(echo.POST, "/api/auth/users", middleware.Admin, adminHandler.CreateUser)
	route(echo.PUT, "/api/auth/users/:id/status", middleware.Admin, adminHandler.SetUserStatus)
	route(echo.GET, "/api/auth/roles", middleware.Admin, adminHandler.ListRoles)
	route(echo.POST, "/api/auth/roles", middleware.Admin, adminHandler.CreateRole)
	route(echo.PUT, "/api/auth/roles/assign", middleware.Admin, adminHandler.AssignRole)

	// --- Catalogue and stock ---
	route(echo.GET, "/api/products", middleware.Authenticated, productHandler.List)
	route(echo.GET, "/api/products/:id", middleware.Authenticated, productHandler.Get)
	route(echo.POST, "/api/products", middleware.Authenticated, productHandler.Create)
	route(echo.PUT, "/api/products/:id", middleware.Authenticated, productHandler.Update)
	route(echo.DELETE, "/api/products/:id", middleware.Admin, productHandler.Delete)
	route(echo.GET, "/api/inventory", middleware.Authenticated, inventoryHandler.Levels)
	route(echo.POST, "/api/movements", middleware.Authenticated, inventoryHandler.ApplyMovement)
	route(echo.GET, "/api/movements", middleware.Authenticated, inventoryHandler.Movements)

	// --- Public operational surface (allow-listed in the middleware) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, recorder
}
