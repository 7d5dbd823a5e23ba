package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/logger"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
	"github.com/RuvinSL/alt-audit/pkg/store"
	"github.com/RuvinSL/alt-audit/services/scanner/core"
	"github.com/gorilla/mux"
)

const (
	userIDHeader  = "X-User-ID"
	anonymousUser = "anonymous"

	defaultListLimit  = 20
	maxListLimit      = 100
	defaultImageLimit = 100
	maxImageLimit     = 1000
)

// ScanHandler serves the scan endpoints
type ScanHandler struct {
	scanner          interfaces.Scanner
	store            interfaces.ScanStore
	logger           interfaces.Logger
	maxBatchSize     int
	batchConcurrency int
}

func NewScanHandler(scanner interfaces.Scanner, store interfaces.ScanStore, logger interfaces.Logger, maxBatchSize, batchConcurrency int) *ScanHandler {
	return &ScanHandler{
		scanner:          scanner,
		store:            store,
		logger:           logger,
		maxBatchSize:     maxBatchSize,
		batchConcurrency: batchConcurrency,
	}
}

// ImagePage is one page of a record's images
type ImagePage struct {
	ScanID string                  `json:"scan_id"`
	Total  int                     `json:"total"`
	Offset int                     `json:"offset"`
	Limit  int                     `json:"limit"`
	Images []models.ImageCandidate `json:"images"`
}

// CreateScan scans one URL and stores the outcome
func (h *ScanHandler) CreateScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithContext(ctx, h.logger)

	var req models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to parse request", "error", err)
		h.sendError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	target := strings.TrimSpace(req.URL)
	if target == "" {
		h.sendError(w, "URL is required", http.StatusBadRequest)
		return
	}

	userID := userFromRequest(r)
	log.Info("Processing scan request", "url", target, "user_id", userID)

	// persistence is not bound to the client connection
	persistCtx := context.WithoutCancel(ctx)

	id, err := h.store.CreateScanRecord(persistCtx, target, userID)
	if err != nil {
		log.Error("Failed to create scan record", "url", target, "error", err)
		h.sendError(w, "Failed to create scan", http.StatusInternalServerError)
		return
	}

	outcome := h.scanner.ScanURL(ctx, target)

	record, err := h.saveOutcome(persistCtx, id, outcome)
	if err != nil {
		log.Error("Failed to store scan outcome", "scan_id", id, "error", err)
		h.sendError(w, "Failed to store scan result", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, outcomeStatus(outcome, http.StatusCreated), record)
}

// GetScan returns a stored record
func (h *ScanHandler) GetScan(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	h.sendJSON(w, http.StatusOK, record)
}

// ListScans returns the caller's records newest first
func (h *ScanHandler) ListScans(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePaging(r, defaultListLimit, maxListLimit)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.store.ListScanRecords(r.Context(), userFromRequest(r), offset, limit)
	if err != nil {
		h.logger.Error("Failed to list scan records", "error", err)
		h.sendError(w, "Failed to list scans", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, http.StatusOK, records)
}

// DeleteScan removes a stored record
func (h *ScanHandler) DeleteScan(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteScanRecord(r.Context(), record.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.sendError(w, "Scan not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to delete scan record", "scan_id", record.ID, "error", err)
		h.sendError(w, "Failed to delete scan", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RescanScan scans a stored record's URL again and replaces its outcome
func (h *ScanHandler) RescanScan(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	logger.WithContext(ctx, h.logger).Info("Rescanning", "scan_id", record.ID, "url", record.Outcome.URL)

	outcome := h.scanner.ScanURL(ctx, record.Outcome.URL)

	updated, err := h.saveOutcome(context.WithoutCancel(ctx), record.ID, outcome)
	if err != nil {
		h.logger.Error("Failed to store scan outcome", "scan_id", record.ID, "error", err)
		h.sendError(w, "Failed to store scan result", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, outcomeStatus(outcome, http.StatusOK), updated)
}

// BatchScan scans several URLs concurrently. Each URL gets its own record.
func (h *ScanHandler) BatchScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.WithContext(ctx, h.logger)

	var req models.BatchScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to parse batch request", "error", err)
		h.sendError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if len(req.URLs) == 0 {
		h.sendError(w, "At least one URL is required", http.StatusBadRequest)
		return
	}
	if len(req.URLs) > h.maxBatchSize {
		h.sendError(w, fmt.Sprintf("Maximum %d URLs allowed per batch", h.maxBatchSize), http.StatusBadRequest)
		return
	}

	userID := userFromRequest(r)
	persistCtx := context.WithoutCancel(ctx)

	ids := make([]string, len(req.URLs))
	for i, raw := range req.URLs {
		id, err := h.store.CreateScanRecord(persistCtx, strings.TrimSpace(raw), userID)
		if err != nil {
			log.Error("Failed to create scan record", "url", raw, "error", err)
			h.sendError(w, "Failed to create scan", http.StatusInternalServerError)
			return
		}
		ids[i] = id
	}

	log.Info("Processing batch scan", "count", len(req.URLs), "user_id", userID)
	outcomes := h.scanner.ScanBatch(ctx, req.URLs, h.batchConcurrency)

	result := models.BatchScanResult{
		Records: make([]models.ScanRecord, 0, len(outcomes)),
	}
	for i, outcome := range outcomes {
		record, err := h.saveOutcome(persistCtx, ids[i], outcome)
		if err != nil {
			log.Error("Failed to store scan outcome", "scan_id", ids[i], "error", err)
			result.Errors = append(result.Errors, models.ErrorResponse{
				Error:      "Failed to store scan result",
				StatusCode: http.StatusInternalServerError,
				Details:    outcome.URL,
				Timestamp:  time.Now(),
			})
			continue
		}
		result.Records = append(result.Records, *record)
	}
	result.TotalTime = time.Since(start)

	log.Info("Batch scan completed",
		"count", len(req.URLs),
		"stored", len(result.Records),
		"duration", result.TotalTime,
	)

	h.sendJSON(w, http.StatusOK, result)
}

// ListImages pages a record's images, optionally filtered by alt presence
func (h *ScanHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	offset, limit, err := parsePaging(r, defaultImageLimit, maxImageLimit)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var hasAlt *bool
	if raw := r.URL.Query().Get("has_alt"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.sendError(w, "has_alt must be true or false", http.StatusBadRequest)
			return
		}
		hasAlt = &v
	}

	filtered := core.FilterImages(record.Outcome.Images, hasAlt)
	h.sendJSON(w, http.StatusOK, ImagePage{
		ScanID: record.ID,
		Total:  len(filtered),
		Offset: offset,
		Limit:  limit,
		Images: core.PageImages(filtered, offset, limit),
	})
}

// ExportCSV streams a record's images as CSV
func (h *ScanHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scan-%s.csv"`, record.ID))
	w.WriteHeader(http.StatusOK)

	if err := core.WriteImagesCSV(w, record.Outcome.Images, record.CreatedAt); err != nil {
		h.logger.Error("Failed to write CSV export", "scan_id", record.ID, "error", err)
	}
}

// loadOwned fetches the record named in the route. Records of other users
// are reported as missing.
func (h *ScanHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.ScanRecord, bool) {
	id := mux.Vars(r)["id"]

	record, err := h.store.GetScanRecord(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.sendError(w, "Scan not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to load scan record", "scan_id", id, "error", err)
		h.sendError(w, "Failed to load scan", http.StatusInternalServerError)
		return nil, false
	}

	if record.UserID != userFromRequest(r) {
		h.sendError(w, "Scan not found", http.StatusNotFound)
		return nil, false
	}

	return record, true
}

func (h *ScanHandler) saveOutcome(ctx context.Context, id string, outcome models.ScanOutcome) (*models.ScanRecord, error) {
	if err := h.store.UpdateScanRecord(ctx, id, outcome); err != nil {
		return nil, err
	}
	return h.store.GetScanRecord(ctx, id)
}

func (h *ScanHandler) sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// sendError sends an error response
func (h *ScanHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, statusCode, models.ErrorResponse{
		Error:      message,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
	})
}

// outcomeStatus picks the response code for a finished scan
func outcomeStatus(outcome models.ScanOutcome, success int) int {
	if outcome.Status == models.ScanStatusCompleted {
		return success
	}
	return scanerr.HTTPStatus(scanerr.Kind(outcome.ErrorCategory))
}

func userFromRequest(r *http.Request) string {
	if user := strings.TrimSpace(r.Header.Get(userIDHeader)); user != "" {
		return user
	}
	return anonymousUser
}

func parsePaging(r *http.Request, defaultLimit, maxLimit int) (offset, limit int, err error) {
	query := r.URL.Query()

	limit = defaultLimit
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, fmt.Errorf("limit must be between 1 and %d", maxLimit)
		}
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}

	return offset, limit, nil
}
