package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/config"
	"github.com/prospecta/prospecta-api/internal/infrastructure/database"
	"github.com/prospecta/prospecta-api/internal/infrastructure/repository"
	"github.com/prospecta/prospecta-api/internal/presentation/http/handler"
	"github.com/prospecta/prospecta-api/internal/presentation/http/routes"
	"github.com/prospecta/prospecta-api/pkg/email"
	"github.com/prospecta/prospecta-api/pkg/logger"
	"github.com/prospecta/prospecta-api/pkg/oauth"
	"github.com/prospecta/prospecta-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default stages and the initial admin account
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	stageRepo := repository.NewStageRepository(db)
	tagRepo := repository.NewTagRepository(db)
	productRepo := repository.NewProductRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromAddress,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.App.FrontendURL + "/auth/callback",
		FrontendErrorURL:   cfg.App.FrontendURL + "/login?error=oauth",
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, appLogger)
	leadService := service.NewLeadService(leadRepo, stageRepo, userRepo)
	importService := service.NewLeadImportService(leadRepo, stageRepo, productRepo, providerRepo, userRepo, appLogger)
	stageService := service.NewStageService(stageRepo, tagRepo, leadRepo)
	tagService := service.NewTagService(tagRepo, stageRepo, leadRepo)
	productService := service.NewProductService(productRepo, leadRepo)
	providerService := service.NewProviderService(providerRepo, leadRepo)
	dashboardService := service.NewDashboardService(leadRepo, stageRepo, appLogger)
	userService := service.NewUserService(userRepo, leadRepo)

	// Start the background dashboard refresher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dashboardService.StartRefresher(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Lead:      handler.NewLeadHandler(leadService, importService),
		Stage:     handler.NewStageHandler(stageService),
		Tag:       handler.NewTagHandler(tagService),
		Product:   handler.NewProductHandler(productService),
		Provider:  handler.NewProviderHandler(providerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		UserRepo:        userRepo,
		Log:             appLogger,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
