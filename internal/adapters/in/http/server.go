// Package http exposes the order lifecycle over a REST API plus a
// server-sent events stream. Every route below /api/v1 runs behind the
// auth middleware, so handlers receive a resolved tenant context and never
// touch raw identity claims.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on. Narrow interfaces keep handler
// tests free of database and broker setup.
type submitOrderHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (*order.Order, error)
}

type changeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type getOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type listActiveOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListActiveOrdersQuery) ([]queries.ListActiveOrdersQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrder       submitOrderHandler
	changeOrderStatus changeOrderStatusHandler
	getOrder          getOrderHandler
	listActiveOrders  listActiveOrdersHandler
	notifier          ports.Notifier

	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrder submitOrderHandler,
	changeOrderStatus changeOrderStatusHandler,
	getOrder getOrderHandler,
	listActiveOrders listActiveOrdersHandler,
	notifier ports.Notifier,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrder:       submitOrder,
		changeOrderStatus: changeOrderStatus,
		getOrder:          getOrder,
		listActiveOrders:  listActiveOrders,
		notifier:          notifier,
		validate:          validator.New(),
		logger:            logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the API on the echo instance. The health endpoint
// stays outside the auth middleware so probes need no token.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.ListActiveOrders)
	api.GET("/orders/events", s.StreamOrderEvents)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitOrder handles POST /api/v1/orders. A declined payment still
// produces a persisted failed order; the response carries it alongside the
// 402 status so clients can show the order number on the decline screen.
func (s *Server) SubmitOrder(c echo.Context) error {
	tenant, ok := tenantFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing tenant context"))
	}

	var request SubmitOrderRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Invalid request body"))
	}
	if err := s.validate.Struct(request); err != nil {
		return s.writeRequestErrors(c, err)
	}

	submission, err := request.toSubmission()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(tenant, kernel.NewUUID(), submission)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.submitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrPaymentDeclined) && created != nil {
			return c.JSON(http.StatusPaymentRequired, orderResponseFromAggregate(created))
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	tenant, ok := tenantFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing tenant context"))
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Malformed order id"))
	}

	var request ChangeOrderStatusRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Invalid request body"))
	}
	if err := s.validate.Struct(request); err != nil {
		return s.writeRequestErrors(c, err)
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		tenant, orderID, target, request.ExpectedVersion, request.Reason)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.changeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	tenant, ok := tenantFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing tenant context"))
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Malformed order id"))
	}

	query, err := queries.NewGetOrderQuery(tenant, orderID)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromQuery(result))
}

// ListActiveOrders handles GET /api/v1/orders. An optional status query
// parameter narrows the board to one column.
func (s *Server) ListActiveOrders(c echo.Context) error {
	tenant, ok := tenantFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing tenant context"))
	}

	statusFilter := order.Unknown
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Unrecognized status filter"))
		}
		statusFilter = parsed
	}

	query, err := queries.NewListActiveOrdersQuery(tenant, statusFilter)
	if err != nil {
		return writeError(c, err)
	}

	results, err := s.listActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, summariesFromQuery(results))
}

// StreamOrderEvents handles GET /api/v1/orders/events as a server-sent
// events stream. The stream carries only the tenant's own events and ends
// when the client disconnects.
func (s *Server) StreamOrderEvents(c echo.Context) error {
	tenant, ok := tenantFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing tenant context"))
	}

	ctx := c.Request().Context()
	events, err := s.notifier.Subscribe(ctx, tenant.RestaurantID())
	if err != nil {
		return writeError(c, err)
	}

	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	for event := range events {
		payload, marshalErr := json.Marshal(sseEventBody(event))
		if marshalErr != nil {
			s.logger.WarnContext(ctx, "skipping unserializable order event", "error", marshalErr)
			continue
		}

		if _, writeErr := fmt.Fprintf(response, "event: order_status\ndata: %s\n\n", payload); writeErr != nil {
			return nil
		}
		response.Flush()
	}

	return nil
}

// sseEventBody shapes one order event for the stream.
func sseEventBody(event ports.OrderEvent) map[string]any {
	body := map[string]any{
		"orderId":     event.OrderID.String(),
		"orderNumber": event.OrderNumber,
		"fromStatus":  event.FromStatus,
		"toStatus":    event.ToStatus,
		"occurredAt":  event.OccurredAt,
	}
	if event.Reason != "" {
		body["reason"] = event.Reason
	}
	return body
}

// writeRequestErrors maps validator tag failures onto the field error body.
func (s *Server) writeRequestErrors(c echo.Context, err error) error {
	body := errorBody(http.StatusBadRequest, "Invalid request body")

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, f := range validationErrors {
			body.Fields = append(body.Fields, FieldError{
				Field:   f.Field(),
				Message: "failed " + f.Tag() + " check",
			})
		}
	}

	return c.JSON(http.StatusBadRequest, body)
}
