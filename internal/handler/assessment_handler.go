package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"riskdesk/internal/errors"
	"riskdesk/internal/service"
)

// AssessmentHandler handles risk assessment endpoints.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// AssessmentRequest represents a request to run an assessment.
type AssessmentRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid4"`
	Notes    string `json:"notes"`
}

// CreateAssessment godoc
// @Summary Run a risk assessment over a client
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssessmentRequest true "Assessment request"
// @Success 201 {object} model.RiskAssessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid client ID",
			Code:  "INVALID_UUID",
		})
	}

	assessment, err := h.assessmentService.CreateAssessment(c.Request().Context(), clientID, claims.CompanyID, claims.UserID, req.Notes)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, assessment)
}

// ListAssessments godoc
// @Summary List assessments for the company, optionally filtered by client
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param client_id query string false "Client ID filter"
// @Success 200 {array} model.RiskAssessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid client ID",
				Code:  "INVALID_UUID",
			})
		}
		assessments, err := h.assessmentService.ListClientAssessments(c.Request().Context(), clientID, claims.CompanyID)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, assessments)
	}

	assessments, err := h.assessmentService.ListAssessments(c.Request().Context(), claims.CompanyID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, assessments)
}

// GetAssessment godoc
// @Summary Get one assessment with its recommendations
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} model.RiskAssessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid assessment ID",
			Code:  "INVALID_UUID",
		})
	}

	assessment, err := h.assessmentService.GetAssessment(c.Request().Context(), id, claims.CompanyID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, assessment)
}
