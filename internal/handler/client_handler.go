package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"riskdesk/internal/errors"
	"riskdesk/internal/model"
	"riskdesk/internal/service"
)

// ClientHandler handles insured entity endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest represents a create or update request for a client.
// years_experience is a pointer so an update can set it back to zero.
type ClientRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Industry        string  `json:"industry" validate:"required"`
	State           string  `json:"state" validate:"required,len=2"`
	EducationLevel  string  `json:"education_level"`
	JobTitle        string  `json:"job_title"`
	YearsExperience *int    `json:"years_experience" validate:"omitempty,gte=0"`
	AnnualRevenue   string  `json:"annual_revenue" validate:"required"`
	CoverageAmount  string  `json:"coverage_amount" validate:"required"`
	PolicyNumber    string  `json:"policy_number"`
	PolicyEffective *string `json:"policy_effective"` // RFC 3339 date
	PolicyExpiry    *string `json:"policy_expiry"`    // RFC 3339 date
}

func (r *ClientRequest) amounts() (revenue, coverage decimal.Decimal, err error) {
	revenue, err = decimal.NewFromString(r.AnnualRevenue)
	if err != nil {
		return revenue, coverage, echo.NewHTTPError(http.StatusBadRequest, "invalid annual_revenue")
	}
	coverage, err = decimal.NewFromString(r.CoverageAmount)
	if err != nil {
		return revenue, coverage, echo.NewHTTPError(http.StatusBadRequest, "invalid coverage_amount")
	}
	return revenue, coverage, nil
}

func (r *ClientRequest) policyDates() (effective, expiry *time.Time, err error) {
	if r.PolicyEffective != nil {
		t, perr := time.Parse(time.RFC3339, *r.PolicyEffective)
		if perr != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid policy_effective")
		}
		effective = &t
	}
	if r.PolicyExpiry != nil {
		t, perr := time.Parse(time.RFC3339, *r.PolicyExpiry)
		if perr != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid policy_expiry")
		}
		expiry = &t
	}
	return effective, expiry, nil
}

func (r *ClientRequest) toModel() (*model.Client, error) {
	revenue, coverage, err := r.amounts()
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		Name:           r.Name,
		Email:          r.Email,
		Industry:       r.Industry,
		State:          r.State,
		EducationLevel: r.EducationLevel,
		JobTitle:       r.JobTitle,
		AnnualRevenue:  revenue,
		CoverageAmount: coverage,
		PolicyNumber:   r.PolicyNumber,
	}
	if r.YearsExperience != nil {
		client.YearsExperience = *r.YearsExperience
	}

	client.PolicyEffective, client.PolicyExpiry, err = r.policyDates()
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (r *ClientRequest) toUpdate() (*service.ClientUpdate, error) {
	revenue, coverage, err := r.amounts()
	if err != nil {
		return nil, err
	}
	effective, expiry, err := r.policyDates()
	if err != nil {
		return nil, err
	}

	return &service.ClientUpdate{
		Name:            r.Name,
		Email:           r.Email,
		Industry:        r.Industry,
		State:           r.State,
		EducationLevel:  r.EducationLevel,
		JobTitle:        r.JobTitle,
		YearsExperience: r.YearsExperience,
		AnnualRevenue:   &revenue,
		CoverageAmount:  &coverage,
		PolicyNumber:    r.PolicyNumber,
		PolicyEffective: effective,
		PolicyExpiry:    expiry,
	}, nil
}

// CreateClient godoc
// @Summary Create an insured entity
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ClientRequest true "Client data"
// @Success 201 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := req.toModel()
	if err != nil {
		return err
	}
	client.CompanyID = claims.CompanyID

	created, err := h.clientService.CreateClient(c.Request().Context(), client)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, created)
}

// ListClients godoc
// @Summary List the company's insured entities
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Client
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.ListClients(c.Request().Context(), claims.CompanyID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, clients)
}

// GetClient godoc
// @Summary Get one insured entity
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid client ID",
			Code:  "INVALID_UUID",
		})
	}

	client, err := h.clientService.GetClient(c.Request().Context(), id, claims.CompanyID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, client)
}

// UpdateClient godoc
// @Summary Update an insured entity
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body ClientRequest true "Client data"
// @Success 200 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid client ID",
			Code:  "INVALID_UUID",
		})
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := req.toUpdate()
	if err != nil {
		return err
	}

	client, err := h.clientService.UpdateClient(c.Request().Context(), id, claims.CompanyID, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete an insured entity
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid client ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.clientService.DeleteClient(c.Request().Context(), id, claims.CompanyID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
