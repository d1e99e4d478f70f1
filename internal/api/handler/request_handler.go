package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/interactive/eservice-platform/internal/api/metrics"
	"github.com/interactive/eservice-platform/internal/core/domain"
	"github.com/interactive/eservice-platform/internal/core/ports"
)

// RequestHandler handles HTTP requests for the request lifecycle.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /api/v1/requests.
//
// @Summary      Create a new document request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  domain.Request
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateRequestInput{
		UserID:       req.UserID,
		DocumentType: req.DocumentType,
		Title:        req.Title,
		Description:  req.Description,
		BirthDate:    req.BirthDate,
		BirthPlace:   req.BirthPlace,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(created.DocumentType).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/v1/requests/:id.
//
// @Summary      Get a request by id
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  domain.Request
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// ListByUser handles GET /api/v1/requests/user/:userId.
//
// @Summary      List requests by owning user
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User id"
// @Success      200     {array}   domain.Request
// @Router       /api/v1/requests/user/{userId} [get]
func (h *RequestHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	requests, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(requests))
}

// ListByStatus handles GET /api/v1/requests/status/:status. An unknown
// status matches nothing and yields an empty list, never an error.
//
// @Summary      List requests by status
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "Request status"
// @Success      200     {array}   domain.Request
// @Router       /api/v1/requests/status/{status} [get]
func (h *RequestHandler) ListByStatus(c echo.Context) error {
	requests, err := h.service.ListByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(requests))
}

// Submit handles PUT /api/v1/requests/:id/submit.
//
// @Summary      Submit a DRAFT request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  domain.Request
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/requests/{id}/submit [put]
func (h *RequestHandler) Submit(c echo.Context) error {
	return h.transition(c, "submit", h.service.Submit)
}

// Reject handles PUT /api/v1/requests/:id/reject.
//
// @Summary      Reject a SUBMITTED request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  domain.Request
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/requests/{id}/reject [put]
func (h *RequestHandler) Reject(c echo.Context) error {
	return h.transition(c, "reject", h.service.Reject)
}

// Approve handles PUT /api/v1/requests/:id/approve.
//
// @Summary      Approve a SUBMITTED request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  domain.Request
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/requests/{id}/approve [put]
func (h *RequestHandler) Approve(c echo.Context) error {
	return h.transition(c, "approve", h.service.Approve)
}

func (h *RequestHandler) transition(c echo.Context, operation string, op func(ctx context.Context, id int64) (*domain.Request, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req, err := op(c.Request().Context(), id)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidTransition) {
			result = "invalid_transition"
		} else if errors.Is(err, domain.ErrRequestNotFound) {
			result = "not_found"
		}
		metrics.RequestTransitionsTotal.WithLabelValues(operation, result).Inc()
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(operation, "success").Inc()
	return c.JSON(http.StatusOK, req)
}

// pathID parses a numeric path parameter; a non-numeric value is a 404, the
// same outcome as an id that does not exist.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "request not found: id "+c.Param(name))
	}
	return id, nil
}

// emptyIfNil keeps empty list responses as [] rather than null.
func emptyIfNil(requests []*domain.Request) []*domain.Request {
	if requests == nil {
		return []*domain.Request{}
	}
	return requests
}
