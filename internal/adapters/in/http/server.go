// Package http exposes the order lifecycle over a JSON API.
package http

import (
	"errors"
	"net/http"
	"strings"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/application/usecases/queries"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// defaultActor is recorded in the audit trail when a request does not name
// its operator.
const defaultActor = "api"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	advanceOrderHandler  commands.AdvanceOrderCommandHandler
	setBuyerInfoHandler  commands.SetBuyerInfoCommandHandler
	retryOrderHandler    commands.RetryOrderCommandHandler
	markReviewHandler    commands.MarkManualReviewCommandHandler
	resolveReviewHandler commands.ResolveManualReviewCommandHandler

	// Query handlers
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getAuditTrailHandler     queries.GetOrderAuditTrailQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	setBuyerInfoHandler commands.SetBuyerInfoCommandHandler,
	retryOrderHandler commands.RetryOrderCommandHandler,
	markReviewHandler commands.MarkManualReviewCommandHandler,
	resolveReviewHandler commands.ResolveManualReviewCommandHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getAuditTrailHandler queries.GetOrderAuditTrailQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		advanceOrderHandler:      advanceOrderHandler,
		setBuyerInfoHandler:      setBuyerInfoHandler,
		retryOrderHandler:        retryOrderHandler,
		markReviewHandler:        markReviewHandler,
		resolveReviewHandler:     resolveReviewHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getAuditTrailHandler:     getAuditTrailHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/buyer-info", s.SetBuyerInfo)
	api.POST("/orders/:id/retry", s.RetryOrder)
	api.POST("/orders/:id/review", s.MarkReview)
	api.POST("/orders/:id/review/resolve", s.ResolveReview)
	api.GET("/orders/:id/audit", s.GetAuditTrail)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a platform sale.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.Platform,
		req.PlatformOrderRef, req.ProductID, req.Qty, actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves an order one
// pipeline step.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Unknown target status: "+req.Target)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid advance data: "+err.Error())
	}

	if handleErr := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetBuyerInfo handles POST /api/v1/orders/:id/buyer-info.
func (s *Server) SetBuyerInfo(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetBuyerInfoRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetBuyerInfoCommand(orderID, req.Name, req.Phone,
		req.Address1, req.Address2, req.Zip, req.Country, req.CustomsID,
		actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid buyer info: "+err.Error())
	}

	if handleErr := s.setBuyerInfoHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryOrder handles POST /api/v1/orders/:id/retry - re-drives a retrying
// order immediately instead of waiting for the retry job.
func (s *Server) RetryOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RetryOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRetryOrderCommand(orderID, actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid retry data: "+err.Error())
	}

	if handleErr := s.retryOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReview handles POST /api/v1/orders/:id/review - parks an order for
// operator attention.
func (s *Server) MarkReview(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req MarkReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkManualReviewCommand(orderID, req.Reason, actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if handleErr := s.markReviewHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveReview handles POST /api/v1/orders/:id/review/resolve.
func (s *Server) ResolveReview(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ResolveReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveManualReviewCommand(orderID, req.Verdict,
		req.Note, actorOrDefault(req.Actor))
	if err != nil {
		return badRequest(ctx, "Invalid verdict: "+err.Error())
	}

	if handleErr := s.resolveReviewHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered
// by a comma-separated status list.
func (s *Server) GetOrders(ctx echo.Context) error {
	statuses, err := parseStatusFilter(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrdersByStatusQuery(statuses...)
	if err != nil {
		return badRequest(ctx, "Invalid status filter: "+err.Error())
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, item := range orders {
		response[i] = Order{
			ID:               item.ID.String(),
			Platform:         item.Platform,
			PlatformOrderRef: item.PlatformOrderRef,
			ProductID:        item.ProductID,
			Qty:              item.Qty,
			UnitPriceAmount:  item.UnitPrice.Amount(),
			UnitPriceCcy:     item.UnitPrice.Currency(),
			Status:           item.Status.String(),
			RetryCount:       item.RetryCount,
			SupplierOrderID:  item.SupplierOrderID,
			ForwarderJobID:   item.ForwarderJobID,
			CreatedAt:        item.CreatedAt,
			UpdatedAt:        item.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAuditTrail handles GET /api/v1/orders/:id/audit.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderAuditTrailQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid audit query: "+err.Error())
	}

	entries, err := s.getAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve audit trail")
	}

	response := make([]AuditEntry, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntry{
			Actor:     entry.Actor,
			Action:    entry.Action,
			Meta:      entry.Meta,
			Timestamp: entry.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return defaultActor
	}
	return actor
}

// parseStatusFilter parses a comma-separated status list. An empty filter
// means no filtering.
func parseStatusFilter(raw string) ([]order.Status, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]order.Status, 0, len(parts))
	for _, part := range parts {
		status, err := order.StatusFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("unknown status: " + part)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// mapDomainError translates application errors into HTTP responses: missing
// aggregates map to 404, optimistic-guard misses and illegal transitions to
// 409, validation to 400 and external-call failures to 502.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrStaleState), errors.Is(err, order.ErrIllegalTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrExternalCall):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, "Internal server error")
	}
}
