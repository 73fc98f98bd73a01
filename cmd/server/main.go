package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"riskdesk/docs"

	"riskdesk/internal/auth"
	"riskdesk/internal/cache"
	"riskdesk/internal/config"
	"riskdesk/internal/db"
	"riskdesk/internal/handler"
	"riskdesk/internal/logger"
	"riskdesk/internal/model"
	"riskdesk/internal/rbac"
	"riskdesk/internal/repository"
	"riskdesk/internal/router"
	"riskdesk/internal/seed"
	"riskdesk/internal/service"
)

// @title RiskDesk API
// @version 1.0
// @description Insurance risk-assessment platform: client records, IRPA/CCI scoring, and underwriting recommendations behind JWT-authenticated CRUD endpoints.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	log := logger.L

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalw("database init", "error", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.Client{},
		&model.RiskAssessment{},
		&model.Recommendation{},
		&model.AssessmentLog{},
		&model.RiskFactor{},
		&model.Industry{},
		&model.State{},
		&model.EducationLevel{},
		&model.JobTitle{},
	); err != nil {
		log.Fatalw("auto-migrate", "error", err)
	}

	if err := seed.FirstSetup(gormDB); err != nil {
		log.Fatalw("first setup", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	assessmentRepo := repository.NewAssessmentRepository(gormDB)
	recommendationRepo := repository.NewRecommendationRepository(gormDB)
	logRepo := repository.NewAssessmentLogRepository(gormDB)
	referenceRepo := repository.NewReferenceRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	checker := rbac.Checker{DB: gormDB}

	// Services
	authService := service.NewAuthService(userRepo, companyRepo, jwtService, tokenStore)
	clientService := service.NewClientService(clientRepo, cacheClient)
	assessmentService := service.NewAssessmentService(clientRepo, assessmentRepo, recommendationRepo, logRepo, referenceRepo)
	userService := service.NewUserService(userRepo, gormDB)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	adminHandler := handler.NewAdminHandler(userService)
	pageHandler := handler.NewPageHandler(clientService, assessmentService, userService)

	renderer, err := handler.NewRenderer("web/templates/*.html")
	if err != nil {
		log.Fatalw("template init", "error", err)
	}
	e.Renderer = renderer

	router.Register(
		e,
		cfg,
		cacheClient.Redis(),
		jwtService,
		checker,
		authHandler,
		clientHandler,
		assessmentHandler,
		adminHandler,
		pageHandler,
	)

	log.Infow("starting server", "port", cfg.ServerPort, "environment", cfg.Environment)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalw("server start", "error", err)
	}
}
