/*
handlers.go - HTTP API handlers for the attendance ledger

PURPOSE:
  Exposes the ledger engine over REST. Handlers parse HTTP, serialize
  JSON, and delegate to the engine; no ledger semantics live here.

ENDPOINTS:
  Roster:
    GET  /api/employees                          Roster passthrough
    POST /api/ledger/load                        (Re)load roster into ledger

  Ledger:
    GET  /api/ledger                             Rows + grand total
    PUT  /api/ledger/rows/{row}/days/{day}/hours Commit an hours edit
    POST /api/ledger/rows/{row}/days/{day}/absent
    POST /api/ledger/rows/{row}/days/{day}/present
    POST /api/ledger/save                        Local save + snapshot
    POST /api/ledger/submit                      Save + persist submission
    GET  /api/ledger/export                      xlsx download

  Rollup:
    GET  /api/rollup                             Vendor + all sites
    GET  /api/rollup/vendor
    GET  /api/rollup/sites/{site}

  Input:
    POST /api/time/preview                       Live/commit normalization

CONCURRENCY:
  The engine is single-owner mutable state with a cooperative
  one-action-at-a-time model. The Handler owns it and serializes all
  access behind a mutex; each request is one discrete action processed
  to completion.

ERROR HANDLING:
  - 400: malformed request body or index
  - 404: unknown row/day/site
  - 409: operations on an unloaded ledger
  - 502: roster source failure (engine stays unloaded, no retries)
  - 500: everything else

SEE ALSO:
  - dto.go:    wire types
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Abk8406/attendance-manager/engine"
	"github.com/Abk8406/attendance-manager/export"
	"github.com/Abk8406/attendance-manager/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers and owns the ledger.
// The mutex serializes ledger actions: one discrete user action at a
// time, processed to completion.
type Handler struct {
	source roster.Source
	sink   roster.Sink

	mu     sync.Mutex
	ledger *engine.Ledger
}

// NewHandler creates a handler owning a fresh ledger for cfg.
func NewHandler(cfg engine.Config, source roster.Source, sink roster.Sink) (*Handler, error) {
	ledger, err := engine.NewLedger(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{
		source: source,
		sink:   sink,
		ledger: ledger,
	}, nil
}

// =============================================================================
// ROSTER
// =============================================================================

// ListEmployees returns the roster as the source reports it.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.source.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to load employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{
			ID:          e.ID,
			Name:        e.Name,
			EmpID:       e.EmpID,
			Designation: e.Designation,
			HourlyRate:  e.HourlyRate,
			Site:        e.Site,
			Attendance:  e.Attendance,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadLedger populates the ledger from the roster source. On source
// failure the ledger keeps its previous state (empty if never loaded).
func (h *Handler) LoadLedger(w http.ResponseWriter, r *http.Request) {
	employees, err := h.source.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to load employees", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.ledger.Load(roster.Seeds(employees))
	writeJSON(w, http.StatusOK, h.ledgerDTO())
}

// =============================================================================
// LEDGER STATE AND EDITS
// =============================================================================

// GetLedger returns the current editable table.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.ledgerDTO())
}

// SetHours commits an hours edit for one day (the blur/commit path).
func (h *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	row, day, ok := rowDayParams(w, r)
	if !ok {
		return
	}
	var req SetHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writeLedgerErr(w, h.ledger.SetHours(row, day, req.Hours)) {
		return
	}
	writeJSON(w, http.StatusOK, h.ledgerDTO())
}

// MarkAbsent forces a day into the absent state.
func (h *Handler) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	row, day, ok := rowDayParams(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writeLedgerErr(w, h.ledger.MarkAbsent(row, day)) {
		return
	}
	writeJSON(w, http.StatusOK, h.ledgerDTO())
}

// MarkPresent returns a day to the present state.
func (h *Handler) MarkPresent(w http.ResponseWriter, r *http.Request) {
	row, day, ok := rowDayParams(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writeLedgerErr(w, h.ledger.MarkPresent(row, day)) {
		return
	}
	writeJSON(w, http.StatusOK, h.ledgerDTO())
}

// =============================================================================
// SAVE / SUBMIT / EXPORT
// =============================================================================

// Save captures a fresh rollup snapshot and returns the raw payload.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	payload, err := h.ledger.Save()
	if !h.writeLedgerErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, SaveResponseDTO{Saved: true, Payload: payload})
}

// Submit saves locally, then hands the payload to the sink. A sink
// failure does not roll back the local save or snapshot.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	payload, err := h.ledger.Save()
	h.mu.Unlock()
	if !h.writeLedgerErr(w, err) {
		return
	}

	if err := h.sink.SubmitAttendance(r.Context(), payload); err != nil {
		writeError(w, http.StatusBadGateway, "Submit failed (local save completed)", err)
		return
	}
	writeJSON(w, http.StatusOK, SaveResponseDTO{Saved: true, Payload: payload})
}

// Export streams the ledger as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	sheet, err := h.ledger.Export()
	h.mu.Unlock()
	if !h.writeLedgerErr(w, err) {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	if err := export.WriteXLSX(sheet, w); err != nil {
		// Headers are gone; all we can do is log via the chi middleware.
		return
	}
}

// =============================================================================
// ROLLUP READS
// =============================================================================

// GetRollup returns vendor and per-site figures under the
// snapshot-first policy.
func (h *Handler) GetRollup(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sites := h.ledger.AllSiteTotals()
	dto := RollupDTO{
		Vendor:   siteTotalsDTO(h.ledger.VendorTotals()),
		Sites:    make(map[string]SiteTotalsDTO, len(sites)),
		Snapshot: h.ledger.Snapshot() != nil,
	}
	for name, t := range sites {
		dto.Sites[name] = siteTotalsDTO(t)
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetVendorRollup returns the vendor-wide figures only.
func (h *Handler) GetVendorRollup(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, siteTotalsDTO(h.ledger.VendorTotals()))
}

// GetSiteRollup returns one site's figures.
func (h *Handler) GetSiteRollup(w http.ResponseWriter, r *http.Request) {
	site := chi.URLParam(r, "site")

	h.mu.Lock()
	defer h.mu.Unlock()

	cfg := h.ledger.Config()
	if site != cfg.PrimarySite {
		if _, ok := cfg.Sites[site]; !ok {
			writeError(w, http.StatusNotFound, "Unknown site", nil)
			return
		}
	}
	writeJSON(w, http.StatusOK, siteTotalsDTO(h.ledger.SiteTotalsFor(site)))
}

// =============================================================================
// TIME PREVIEW
// =============================================================================

// PreviewTime normalizes a raw input through both phases. Stateless.
func (h *Handler) PreviewTime(w http.ResponseWriter, r *http.Request) {
	var req TimePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, TimePreviewDTO{
		Live:      engine.LiveFormat(req.Raw),
		Committed: engine.Commit(req.Raw),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// ledgerDTO builds the table DTO. Caller holds the action mutex.
func (h *Handler) ledgerDTO() LedgerDTO {
	cfg := h.ledger.Config()
	dto := LedgerDTO{
		Days:          cfg.Days,
		Rows:          make([]RowDTO, 0, h.ledger.Len()),
		GrandTotalPay: h.ledger.GrandTotalPay(),
		HourlyRate:    cfg.HourlyRate,
	}
	for _, r := range h.ledger.Rows() {
		days := make([]DayDTO, r.Days())
		for i := 0; i < r.Days(); i++ {
			d := r.Day(i)
			days[i] = DayDTO{Label: cfg.Days[i], Hours: d.Hours(), Absent: d.Absent()}
		}
		dto.Rows = append(dto.Rows, RowDTO{
			EmployeeID:  r.EmployeeID,
			Name:        r.Name,
			EmpID:       r.Code,
			Designation: r.Designation,
			Days:        days,
			TotalHours:  r.TotalHours(),
			TotalPay:    r.TotalPay(),
		})
	}
	return dto
}

// writeLedgerErr maps engine errors to HTTP. Returns true when err was nil.
func (h *Handler) writeLedgerErr(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, engine.ErrNotLoaded):
		writeError(w, http.StatusConflict, "Ledger not loaded", err)
	case errors.Is(err, engine.ErrRowOutOfRange), errors.Is(err, engine.ErrDayOutOfRange):
		writeError(w, http.StatusNotFound, "No such row/day", err)
	default:
		writeError(w, http.StatusInternalServerError, "Ledger operation failed", err)
	}
	return false
}

func rowDayParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid row index", err)
		return 0, 0, false
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day index", err)
		return 0, 0, false
	}
	return row, day, true
}

func siteTotalsDTO(t engine.SiteTotals) SiteTotalsDTO {
	return SiteTotalsDTO{Employees: t.Employees, Hours: t.Hours, Pay: t.Pay}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
