package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danvitmon/contactpro/internal/handlers"
	"github.com/danvitmon/contactpro/internal/middleware"
	"github.com/danvitmon/contactpro/internal/repositories"
	"github.com/danvitmon/contactpro/internal/services"
	"github.com/danvitmon/contactpro/pkg/config"
	"github.com/danvitmon/contactpro/pkg/database"
	"github.com/danvitmon/contactpro/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)
	logger.Init()

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.SeedDemoUser(config.AppConfig.Demo.UserEmail, config.AppConfig.Demo.UserName); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	contactRepo := repositories.NewContactRepository(database.DB)
	categoryRepo := repositories.NewCategoryRepository(database.DB)
	contactCategoryRepo := repositories.NewContactCategoryRepository(database.DB)

	userService := services.NewUserService(userRepo)
	addressBookService := services.NewAddressBookService(contactRepo, categoryRepo, contactCategoryRepo)
	contactService := services.NewContactService(contactRepo, categoryRepo, contactCategoryRepo, addressBookService)
	categoryService := services.NewCategoryService(categoryRepo, contactCategoryRepo)
	exportService := services.NewExportService(contactService)

	mailer := services.NewSMTPMailer(
		config.AppConfig.Email.Host,
		config.AppConfig.Email.Port,
		config.AppConfig.Email.Address,
		config.AppConfig.Email.Password,
	)
	emailService := services.NewEmailService(categoryRepo, contactRepo, contactCategoryRepo, mailer)

	// Initialize router
	router := gin.Default()
	router.Use(middleware.SessionMiddleware())

	setupRoutes(router, userService, contactService, categoryService, emailService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	userService *services.UserService,
	contactService *services.ContactService,
	categoryService *services.CategoryService,
	emailService *services.EmailService,
	exportService *services.ExportService,
) {
	authHandler := handlers.NewAuthHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService, exportService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, emailService)
	healthHandler := handlers.NewHealthHandler()

	// Auth routes
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Protected routes
	contacts := router.Group("/contacts")
	contacts.Use(middleware.AuthRequired())
	{
		contacts.GET("/", contactHandler.ListContacts)
		contacts.GET("/search", contactHandler.SearchContacts)
		contacts.GET("/export", contactHandler.ExportContacts)
		contacts.POST("/", contactHandler.CreateContact)
		contacts.GET("/:id", contactHandler.GetContact)
		contacts.POST("/:id", contactHandler.UpdateContact)
		contacts.POST("/:id/delete", contactHandler.DeleteContact)
	}

	categories := router.Group("/categories")
	categories.Use(middleware.AuthRequired())
	{
		categories.GET("/", categoryHandler.ListCategories)
		categories.POST("/", categoryHandler.CreateCategory)
		categories.POST("/:id", categoryHandler.UpdateCategory)
		categories.POST("/:id/delete", categoryHandler.DeleteCategory)
		categories.GET("/:id/email", categoryHandler.PrepareGroupEmail)
		categories.POST("/:id/email", categoryHandler.SendGroupEmail)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
