package queries

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"time"

	"orderdesk/internal/pkg/guard"
)

var ErrExportOrdersQueryIsNotConstructed = errors.New(
	"ExportOrdersQuery must be created via NewExportOrdersQuery constructor",
)

// exportColumns is the fixed column order of the tabular export. The order
// is part of the contract: downstream consumers depend on it.
var exportColumns = []string{
	"Order ID",
	"Order Number",
	"Customer Name",
	"Customer Email",
	"Created Date",
	"Total",
	"Status",
	"Tracking Number",
}

// ExportOrdersQuery renders a filtered, sorted result set as CSV.
// It composes a ListOrdersQuery, so the same filter surface drives both the
// table view and the export.
type ExportOrdersQuery struct {
	list ListOrdersQuery

	guard guard.ConstructorGuard
}

// NewExportOrdersQuery creates a validated export query from a filter and
// sort key.
func NewExportOrdersQuery(filter Filter, sort SortKey) (ExportOrdersQuery, error) {
	list, err := NewListOrdersQuery(filter, sort)
	if err != nil {
		return ExportOrdersQuery{}, err
	}

	return ExportOrdersQuery{
		list:  list,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// List returns the underlying list query.
func (q ExportOrdersQuery) List() ListOrdersQuery {
	return q.list
}

// Validate ensures the query was created through the constructor.
func (q ExportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrExportOrdersQueryIsNotConstructed)
}

// ExportOrdersQueryHandler renders query results to CSV bytes with the
// fixed column order: Order ID, Order Number, Customer Name, Customer
// Email, Created Date, Total, Status, Tracking Number.
type ExportOrdersQueryHandler struct {
	listHandler ListOrdersQueryHandler
}

// NewExportOrdersQueryHandler creates an export handler reusing the list
// pipeline.
func NewExportOrdersQueryHandler(listHandler ListOrdersQueryHandler) ExportOrdersQueryHandler {
	return ExportOrdersQueryHandler{listHandler: listHandler}
}

// Handle runs the filter + sort pipeline and renders the result as CSV with
// a header row. An export of an empty result set contains only the header.
func (h ExportOrdersQueryHandler) Handle(ctx context.Context, query ExportOrdersQuery) ([]byte, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries, err := h.listHandler.Handle(ctx, query.List())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err = writer.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, summary := range summaries {
		record := []string{
			summary.ID.String(),
			summary.OrderNumber,
			summary.CustomerName,
			summary.CustomerEmail,
			summary.CreatedAt.Format(time.RFC3339),
			summary.Total.String(),
			summary.Status.String(),
			summary.TrackingNumber,
		}
		if err = writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
