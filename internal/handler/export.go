// Package handler — export.go implements GET /api/export.
// Returns every item across the user's plans as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/kliang/packmate/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"plan_id", "trip_name", "destination", "trip_start_date", "trip_end_date",
	"item_name", "category", "quantity", "item_date", "activity_name",
}

// GetExport handles GET /api/export.
// It returns one row per item across all of the user's plans; plans with no
// items appear as a single row with empty item columns.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	respond(w, http.StatusOK, rows)
}

// writeCSV encodes the rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="packing-export.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// The quantity column is empty for a plan-only row (a plan with no items).
func exportRowToCSVRecord(r domain.ExportRow) []string {
	quantity := ""
	if r.ItemName != "" {
		quantity = strconv.Itoa(r.Quantity)
	}
	return []string{
		r.PlanID,
		r.TripName,
		r.Destination,
		r.TripStartDate,
		r.TripEndDate,
		r.ItemName,
		r.Category,
		quantity,
		r.ItemDate,
		r.ActivityName,
	}
}
