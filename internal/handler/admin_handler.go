package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"riskdesk/internal/errors"
	"riskdesk/internal/model"
	"riskdesk/internal/service"
)

// AdminHandler handles admin-only user management endpoints.
type AdminHandler struct {
	userService service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// AssignRoleRequest names the role to grant.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin underwriter viewer"`
}

// SetStatusRequest sets a user's lifecycle status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// ListUsers godoc
// @Summary List all users with their roles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list users",
			Code:  "LIST_USERS_FAILED",
		})
	}
	return c.JSON(http.StatusOK, users)
}

// AssignRole godoc
// @Summary Grant a role to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body AssignRoleRequest true "Role to grant"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/roles [post]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_USER_ID",
		})
	}

	var req AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.AssignRole(c.Request().Context(), uint(userID), req.Role)
	if err != nil {
		switch err {
		case service.ErrUserNotFound, service.ErrRoleNotFound:
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to assign role",
			Code:  "ASSIGN_ROLE_FAILED",
		})
	}

	return c.JSON(http.StatusOK, user)
}

// SetStatus godoc
// @Summary Activate or suspend a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_USER_ID",
		})
	}

	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SetStatus(c.Request().Context(), uint(userID), model.UserStatus(req.Status))
	if err != nil {
		if err == service.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update status",
			Code:  "SET_STATUS_FAILED",
		})
	}

	return c.JSON(http.StatusOK, user)
}
