package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"

	"riskdesk/internal/auth"
	"riskdesk/internal/config"
	"riskdesk/internal/handler"
	"riskdesk/internal/middleware"
	"riskdesk/internal/rbac"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	rdb *redis.Client,
	jwtService *auth.JWTService,
	checker rbac.Checker,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	assessmentHandler *handler.AssessmentHandler,
	adminHandler *handler.AdminHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Server-rendered pages
	e.GET("/login", pageHandler.LoginPage)
	e.GET("/register", pageHandler.RegisterPage)
	e.GET("/logout", pageHandler.Logout)

	pageAuth := middleware.PageAuth(jwtService)
	e.GET("/dashboard", pageHandler.Dashboard, pageAuth)
	e.GET("/admin/", pageHandler.AdminPage, pageAuth, middleware.RequirePageRole("admin"))

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(rdb, middleware.RateLimitConfig{
		Enabled: cfg.RateLimitEnabled,
		QPS:     cfg.RateLimitQPS,
		Burst:   cfg.RateLimitBurst,
	}))

	// OpenAPI exposure
	api.GET("/spec", func(c echo.Context) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "spec unavailable")
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
	})
	api.GET("/docs/*", echoSwagger.WrapHandler)

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ",cookie:token",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Client routes: reads for any authenticated user with the read
	// permission, writes gated on clients:write.
	secured.GET("/clients", clientHandler.ListClients, middleware.RequirePermission(checker, rbac.Key("clients", "read")))
	secured.GET("/clients/:id", clientHandler.GetClient, middleware.RequirePermission(checker, rbac.Key("clients", "read")))
	secured.POST("/clients", clientHandler.CreateClient, middleware.RequirePermission(checker, rbac.Key("clients", "write")))
	secured.PUT("/clients/:id", clientHandler.UpdateClient, middleware.RequirePermission(checker, rbac.Key("clients", "write")))
	secured.DELETE("/clients/:id", clientHandler.DeleteClient, middleware.RequirePermission(checker, rbac.Key("clients", "write")))

	// Assessment routes
	secured.GET("/assessments", assessmentHandler.ListAssessments, middleware.RequirePermission(checker, rbac.Key("assessments", "read")))
	secured.GET("/assessments/:id", assessmentHandler.GetAssessment, middleware.RequirePermission(checker, rbac.Key("assessments", "read")))
	secured.POST("/assessments", assessmentHandler.CreateAssessment, middleware.RequirePermission(checker, rbac.Key("assessments", "write")))

	// Admin routes
	admin := secured.Group("/admin", middleware.RequirePermission(checker, rbac.Key("users", "admin")))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/roles", adminHandler.AssignRole)
	admin.PUT("/users/:id/status", adminHandler.SetStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
