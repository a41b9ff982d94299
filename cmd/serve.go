package cmd

import (
	"database/sql"
	"net"

	"github.com/freshmarket/commerce-api/app/controller"
	"github.com/freshmarket/commerce-api/app/event"
	"github.com/freshmarket/commerce-api/app/middleware"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"
	"github.com/freshmarket/commerce-api/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server exposing the auth, catalog, order, customer, comment and geo APIs.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer cache.Close()
	}

	startHTTPServer(cfg, db, cache)
}

func startHTTPServer(cfg *config.Config, db *sql.DB, cache *redis.Client) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.AdminOrigin, cfg.CustomerOrigin},
	}))

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewRefreshSessionRepository(db)
	permissionRepo := repository.NewUserPermissionRepository(db)
	addressRepo := repository.NewUserAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cityRepo := repository.NewCityRepository(db)
	districtRepo := repository.NewDistrictRepository(db)
	wardRepo := repository.NewWardRepository(db)

	authService := service.NewAuthService(
		db,
		userRepo,
		sessionRepo,
		service.NewPasswordHasher(cfg.BcryptCost),
		service.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		service.NewResetTicketSource(cfg.ResetTokenTTL),
		service.NewMailer(cfg.Mail),
		cfg,
	)
	customerService := service.NewCustomerService(userRepo, addressRepo, permissionRepo)
	catalogService := service.NewCatalogService(categoryRepo, subCategoryRepo, productRepo)
	orderService := service.NewOrderService(db, orderRepo, orderItemRepo, shipmentRepo, event.NewPublisher(cfg.AMQPURL))
	commentService := service.NewCommentService(commentRepo, productRepo)
	geoService := service.NewGeoService(cityRepo, districtRepo, wardRepo, cache, cfg.GeoCacheTTL)

	authController := controller.NewAuthController(authService)
	customerController := controller.NewCustomerController(customerService)
	catalogController := controller.NewCatalogController(catalogService)
	orderController := controller.NewOrderController(orderService)
	commentController := controller.NewCommentController(commentService)
	geoController := controller.NewGeoController(geoService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	auth := e.Group("/api/auth")
	auth.POST("/signup", authController.SignUp)
	auth.POST("/signin", authController.SignIn)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)

	// The refresh route tolerates an expired access token; by the time a client
	// needs it the short-lived token has usually already lapsed.
	auth.POST("/refresh-token", authController.RefreshToken, authMiddleware.RequireAuthAllowExpired)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.POST("/change-password", authController.ChangePassword)
	authProtected.POST("/logout", authController.Logout)

	customer := e.Group("/api/customers", authMiddleware.RequireAuth)
	customer.GET("/profile", customerController.GetProfile)
	customer.PUT("/profile", customerController.UpdateProfile)
	customer.GET("/permissions", customerController.GetPermissions)
	customer.GET("/addresses", customerController.ListAddresses)
	customer.POST("/addresses", customerController.CreateAddress)
	customer.PUT("/addresses/:id", customerController.UpdateAddress)
	customer.DELETE("/addresses/:id", customerController.DeleteAddress)
	customer.GET("/:id/orders", orderController.ListCustomerOrders, authMiddleware.RequireAdmin, middleware.RequireExists("customer", "id", customerService.CustomerExists))

	categories := e.Group("/api/categories")
	categories.GET("", catalogController.ListCategories)
	categories.GET("/:id", catalogController.GetCategory, middleware.RequireExists("category", "id", catalogService.CategoryExists))
	categories.POST("", catalogController.CreateCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	categories.PUT("/:id", catalogController.UpdateCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	categories.DELETE("/:id", catalogController.DeleteCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)

	subCategories := e.Group("/api/subcategories")
	subCategories.GET("", catalogController.ListSubCategories)
	subCategories.GET("/:id", catalogController.GetSubCategory)
	subCategories.POST("", catalogController.CreateSubCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	subCategories.PUT("/:id", catalogController.UpdateSubCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	subCategories.DELETE("/:id", catalogController.DeleteSubCategory, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)

	products := e.Group("/api/products")
	products.GET("", catalogController.ListProducts)
	products.GET("/:id", catalogController.GetProduct, middleware.RequireExists("product", "id", catalogService.ProductExists))
	products.POST("", catalogController.CreateProduct, authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	products.PUT("/:id", catalogController.UpdateProduct, authMiddleware.RequireAuth, authMiddleware.RequireAdmin, middleware.RequireExists("product", "id", catalogService.ProductExists))
	products.DELETE("/:id", catalogController.DeleteProduct, authMiddleware.RequireAuth, authMiddleware.RequireAdmin, middleware.RequireExists("product", "id", catalogService.ProductExists))

	orders := e.Group("/api/orders", authMiddleware.RequireAuth)
	orders.POST("", orderController.CreateOrder)
	orders.GET("", orderController.ListMyOrders)
	orders.GET("/:id", orderController.GetOrder, middleware.RequireExists("order", "id", orderService.OrderExists))
	orders.PUT("/:id", orderController.UpdateOrder, authMiddleware.RequireAdmin, middleware.RequireExists("order", "id", orderService.OrderExists))
	orders.DELETE("/:id", orderController.DeleteOrder, authMiddleware.RequireAdmin, middleware.RequireExists("order", "id", orderService.OrderExists))

	shipments := e.Group("/api/shipments", authMiddleware.RequireAuth)
	shipments.POST("", orderController.CreateShipment)
	shipments.GET("/:id", orderController.GetShipment)
	shipments.PUT("/:id", orderController.UpdateShipment, authMiddleware.RequireAdmin)
	shipments.DELETE("/:id", orderController.DeleteShipment, authMiddleware.RequireAdmin)

	comments := e.Group("/api/comments")
	comments.GET("", commentController.ListByProduct)
	comments.POST("", commentController.Create, authMiddleware.RequireAuth)
	comments.PUT("/:id", commentController.Update, authMiddleware.RequireAuth, middleware.RequireExists("comment", "id", commentService.CommentExists))
	comments.DELETE("/:id", commentController.Delete, authMiddleware.RequireAuth, middleware.RequireExists("comment", "id", commentService.CommentExists))

	geo := e.Group("/api/geo")
	geo.GET("/cities", geoController.ListCities)
	geo.GET("/cities/:id", geoController.GetCity, middleware.RequireExists("city", "id", geoService.CityExists))
	geo.PUT("/cities/:id", geoController.UpdateCity, authMiddleware.RequireAuth, authMiddleware.RequireAdmin, middleware.RequireExists("city", "id", geoService.CityExists))
	geo.GET("/districts", geoController.ListDistricts)
	geo.GET("/districts/:id", geoController.GetDistrict, middleware.RequireExists("district", "id", geoService.DistrictExists))
	geo.PUT("/districts/:id", geoController.UpdateDistrict, authMiddleware.RequireAuth, authMiddleware.RequireAdmin, middleware.RequireExists("district", "id", geoService.DistrictExists))
	geo.GET("/wards", geoController.ListWards)
	geo.GET("/wards/:id", geoController.GetWard, middleware.RequireExists("ward", "id", geoService.WardExists))
	geo.PUT("/wards/:id", geoController.UpdateWard, authMiddleware.RequireAuth, authMiddleware.RequireAdmin, middleware.RequireExists("ward", "id", geoService.WardExists))

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
