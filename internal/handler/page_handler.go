package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riskdesk/internal/auth"
	"riskdesk/internal/model"
	"riskdesk/internal/service"
)

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	clientService     service.ClientService
	assessmentService service.AssessmentService
	userService       service.UserService
}

// NewPageHandler creates a new page handler.
func NewPageHandler(clientService service.ClientService, assessmentService service.AssessmentService, userService service.UserService) *PageHandler {
	return &PageHandler{
		clientService:     clientService,
		assessmentService: assessmentService,
		userService:       userService,
	}
}

// LoginPage renders the login form.
func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{
		"Title": "Sign in",
	})
}

// RegisterPage renders the registration form.
func (h *PageHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]interface{}{
		"Title": "Create account",
	})
}

// Logout clears the token cookie and redirects to the login page.
func (h *PageHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Dashboard renders the signed-in user's overview: client count and the
// latest assessments of their company.
func (h *PageHandler) Dashboard(c echo.Context) error {
	claims, ok := c.Get("page_claims").(*auth.Claims)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	ctx := c.Request().Context()
	clients, err := h.clientService.ListClients(ctx, claims.CompanyID)
	if err != nil {
		clients = nil
	}
	assessments, err := h.assessmentService.ListAssessments(ctx, claims.CompanyID)
	if err != nil {
		assessments = nil
	}
	if len(assessments) > 10 {
		assessments = assessments[:10]
	}

	highRisk := 0
	for _, a := range assessments {
		if a.RiskCategory == model.RiskCategoryHigh {
			highRisk++
		}
	}

	return c.Render(http.StatusOK, "dashboard.html", map[string]interface{}{
		"Title":       "Dashboard",
		"Email":       claims.Email,
		"IsAdmin":     claims.HasRole(model.RoleAdmin),
		"ClientCount": len(clients),
		"Assessments": assessments,
		"HighRisk":    highRisk,
	})
}

// AdminPage renders the user administration page. Role gating happens in
// the route middleware; this handler only renders.
func (h *PageHandler) AdminPage(c echo.Context) error {
	claims, ok := c.Get("page_claims").(*auth.Claims)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		users = nil
	}

	return c.Render(http.StatusOK, "admin.html", map[string]interface{}{
		"Title": "Administration",
		"Email": claims.Email,
		"Users": users,
	})
}
