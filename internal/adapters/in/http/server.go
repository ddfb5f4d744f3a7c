package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// BaselineSource supplies the comparison snapshot for the statistics
// endpoint. Nil baselines yield neutral change figures.
type BaselineSource interface {
	Baseline() *queries.StatisticsSnapshot
}

// Server handles the HTTP surface of the order engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	attachTrackingHandler commands.AttachTrackingCommandHandler
	bulkChangeHandler     commands.BulkChangeStatusCommandHandler

	// Query handlers
	listOrdersHandler   queries.ListOrdersQueryHandler
	statisticsHandler   queries.OrderStatisticsQueryHandler
	activityFeedHandler queries.ActivityFeedQueryHandler
	exportHandler       queries.ExportOrdersQueryHandler

	baselines BaselineSource
	location  *time.Location
}

// NewServer creates a new HTTP server with the required command and query
// handlers. baselines may be nil when no baseline job is wired; location is
// the vendor timezone for statistics, nil falling back to time.Local.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	attachTrackingHandler commands.AttachTrackingCommandHandler,
	bulkChangeHandler commands.BulkChangeStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	statisticsHandler queries.OrderStatisticsQueryHandler,
	activityFeedHandler queries.ActivityFeedQueryHandler,
	exportHandler queries.ExportOrdersQueryHandler,
	baselines BaselineSource,
	location *time.Location,
) *Server {
	if location == nil {
		location = time.Local
	}
	return &Server{
		changeStatusHandler:   changeStatusHandler,
		attachTrackingHandler: attachTrackingHandler,
		bulkChangeHandler:     bulkChangeHandler,
		listOrdersHandler:     listOrdersHandler,
		statisticsHandler:     statisticsHandler,
		activityFeedHandler:   activityFeedHandler,
		exportHandler:         exportHandler,
		baselines:             baselines,
		location:              location,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/export", s.ExportOrders)
	api.GET("/orders/statistics", s.GetStatistics)
	api.POST("/orders/status", s.BulkChangeStatus)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/tracking", s.AttachTracking)
	api.GET("/activity", s.GetActivityFeed)

	e.GET("/health", s.GetHealth)
}

// GetOrders handles GET /api/v1/orders - retrieves filtered, sorted orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := listQueryFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = summaryToResponse(summary)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ExportOrders handles GET /api/v1/orders/export - renders the same filtered
// result set as a CSV attachment.
func (s *Server) ExportOrders(ctx echo.Context) error {
	listQuery, err := listQueryFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	query, err := queries.NewExportOrdersQuery(listQuery.Filter(), listQuery.Sort())
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	data, err := s.exportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to export orders")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", data)
}

// GetStatistics handles GET /api/v1/orders/statistics - live counts and
// revenue, with change against the captured baseline when one exists.
func (s *Server) GetStatistics(ctx echo.Context) error {
	var baseline *queries.StatisticsSnapshot
	if s.baselines != nil {
		baseline = s.baselines.Baseline()
	}

	query, err := queries.NewOrderStatisticsQuery(
		time.Time{}, time.Time{}, s.location, time.Now(), baseline)
	if err != nil {
		return internalError(ctx, "Failed to build statistics query")
	}

	response, err := s.statisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to compute statistics")
	}

	return ctx.JSON(http.StatusOK, statisticsToResponse(response))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - transitions one
// order to a new status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, target)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachTracking handles POST /api/v1/orders/:id/tracking - records the
// carrier tracking number on an order.
func (s *Server) AttachTracking(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request AttachTrackingRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttachTrackingCommand(id, request.TrackingNumber)
	if err != nil {
		return badRequest(ctx, "Invalid tracking number: "+err.Error())
	}

	if err = s.attachTrackingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkChangeStatus handles POST /api/v1/orders/status - applies one status
// change across many orders and returns the per-item manifest. Partial
// failure is a 200 with failures listed, not an error status: succeeded
// items are already committed.
func (s *Server) BulkChangeStatus(ctx echo.Context) error {
	var request BulkChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	ids := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid order id: "+raw)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkChangeStatusCommand(ids, target)
	if err != nil {
		return badRequest(ctx, "Invalid bulk request: "+err.Error())
	}

	manifest, err := s.bulkChangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to run bulk status change")
	}

	return ctx.JSON(http.StatusOK, manifestToResponse(manifest))
}

// GetActivityFeed handles GET /api/v1/activity - recent status mutations,
// most recent first.
func (s *Server) GetActivityFeed(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit: "+raw)
		}
		limit = parsed
	}

	query, err := queries.NewActivityFeedQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	entries, err := s.activityFeedHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve activity feed")
	}

	response := make([]ActivityEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = ActivityEntryResponse{
			Title:       entry.Title,
			Description: entry.Description,
			OrderNumber: entry.OrderNumber,
			Status:      entry.Status.String(),
			Timestamp:   entry.Timestamp,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// listQueryFromRequest parses the shared filter surface of the table and
// export endpoints: search, status, from, to, min_total, max_total, sort.
func listQueryFromRequest(ctx echo.Context) (queries.ListOrdersQuery, error) {
	filter := queries.Filter{Search: ctx.QueryParam("search")}

	if raw := ctx.QueryParam("status"); raw != "" && raw != "all" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		filter.CreatedFrom = from
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		filter.CreatedTo = to
	}

	if raw := ctx.QueryParam("min_total"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		minTotal, err := kernel.NewMoney(cents)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		filter.MinTotal = &minTotal
	}
	if raw := ctx.QueryParam("max_total"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		maxTotal, err := kernel.NewMoney(cents)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		filter.MaxTotal = &maxTotal
	}

	sort := queries.SortNewest
	if raw := ctx.QueryParam("sort"); raw != "" {
		parsed, err := queries.SortKeyFromString(raw)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		sort = parsed
	}

	return queries.NewListOrdersQuery(filter, sort)
}

// commandError maps a failed command to the HTTP status its cause deserves.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently, retry",
		})
	default:
		return internalError(ctx, "Failed to apply order change")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
