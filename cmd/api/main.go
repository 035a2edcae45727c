package main

import (
	"log"
	"os"

	_ "labquote/api/swagger" // swagger docs
	"labquote/internal/database"
	"labquote/internal/handler"
	"labquote/internal/middleware"
	"labquote/internal/repository"
	"labquote/internal/service"
	"labquote/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Lab Instrument Quotation API
// @version         1.0
// @description     Storefront catalog, enquiry intake and back-office quotation engine with Tally export.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for admin notifications
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	cartRepo := repository.NewCartRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, db)
	productService := service.NewProductService(productRepo, auditService)
	enquiryService := service.NewEnquiryService(enquiryRepo, cartRepo, txManager, wsHub)
	quotationService := service.NewQuotationService(quotationRepo, enquiryRepo, productRepo, policyRepo, txManager, auditService, wsHub)
	cartService := service.NewCartService(cartRepo, productRepo)
	policyService := service.NewPolicyService(policyRepo, txManager)
	statisticsService := service.NewStatisticsService(productRepo, enquiryRepo, quotationRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	cartHandler := handler.NewCartHandler(cartService)
	policyHandler := handler.NewPolicyHandler(policyService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Cart-Session"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for the admin notification feed
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	enquiryHandler.RegisterRoutes(router.Group(""))
	quotationHandler.RegisterRoutes(router.Group(""))
	cartHandler.RegisterRoutes(router.Group(""))
	policyHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
