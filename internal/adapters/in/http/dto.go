package http

import (
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AttachTrackingRequest is the body of POST /api/v1/orders/:id/tracking.
type AttachTrackingRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// BulkChangeStatusRequest is the body of POST /api/v1/orders/status.
type BulkChangeStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// BulkChangeStatusResponse reports the per-item outcome of a bulk change.
type BulkChangeStatusResponse struct {
	Succeeded []string          `json:"succeeded"`
	Failed    []BulkItemFailure `json:"failed"`
}

// BulkItemFailure is one failed item with its stable reason code.
type BulkItemFailure struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// OrderSummaryResponse is one row of the order table surface.
type OrderSummaryResponse struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"order_number"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	Status         string    `json:"status"`
	TotalCents     int64     `json:"total_cents"`
	Total          string    `json:"total"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatisticsResponse is the statistics surface payload.
type StatisticsResponse struct {
	TotalOrders       int            `json:"total_orders"`
	CountsByStatus    map[string]int `json:"counts_by_status"`
	RevenueToday      string         `json:"revenue_today"`
	TotalRevenue      string         `json:"total_revenue"`
	AverageOrderValue string         `json:"average_order_value"`
	Change            ChangeResponse `json:"change"`
}

// ChangeResponse carries period-over-period percentages, zero without a
// baseline.
type ChangeResponse struct {
	TotalOrdersPct       float64 `json:"total_orders_pct"`
	RevenueTodayPct      float64 `json:"revenue_today_pct"`
	AverageOrderValuePct float64 `json:"average_order_value_pct"`
}

// ActivityEntryResponse is one activity feed line.
type ActivityEntryResponse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

func summaryToResponse(summary queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:             summary.ID.String(),
		OrderNumber:    summary.OrderNumber,
		CustomerName:   summary.CustomerName,
		CustomerEmail:  summary.CustomerEmail,
		Status:         summary.Status.String(),
		TotalCents:     summary.Total.Cents(),
		Total:          summary.Total.String(),
		TrackingNumber: summary.TrackingNumber,
		CreatedAt:      summary.CreatedAt,
	}
}

func statisticsToResponse(response queries.OrderStatisticsResponse) StatisticsResponse {
	counts := make(map[string]int, len(response.Current.CountsByStatus))
	for status, count := range response.Current.CountsByStatus {
		counts[status.String()] = count
	}

	return StatisticsResponse{
		TotalOrders:       response.Current.TotalOrders,
		CountsByStatus:    counts,
		RevenueToday:      response.Current.RevenueToday.String(),
		TotalRevenue:      response.Current.TotalRevenue.String(),
		AverageOrderValue: response.Current.AverageOrderValue.String(),
		Change: ChangeResponse{
			TotalOrdersPct:       response.Change.TotalOrdersPct,
			RevenueTodayPct:      response.Change.RevenueTodayPct,
			AverageOrderValuePct: response.Change.AverageOrderValuePct,
		},
	}
}

func manifestToResponse(manifest commands.Manifest) BulkChangeStatusResponse {
	succeeded := make([]string, len(manifest.Succeeded))
	for i, id := range manifest.Succeeded {
		succeeded[i] = id.String()
	}

	failed := make([]BulkItemFailure, len(manifest.Failed))
	for i, failure := range manifest.Failed {
		failed[i] = BulkItemFailure{
			OrderID: failure.OrderID.String(),
			Reason:  string(failure.Reason),
		}
	}

	return BulkChangeStatusResponse{Succeeded: succeeded, Failed: failed}
}
