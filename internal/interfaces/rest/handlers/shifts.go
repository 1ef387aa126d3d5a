package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/report"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
)

// HandleOpenShift opens the restaurant's cash drawer.
// @Summary  Open a cash-register shift
// @Tags     shifts
// @Accept   json
// @Produce  json
// @Param    request  body      services.OpenShiftCommand  true  "Cashier and opening float"
// @Success  201      {object}  rest.APIResponse
// @Failure  409      {object}  rest.APIResponse  "A shift is already open"
// @Router   /shifts [post]
func (h *Handlers) HandleOpenShift(w http.ResponseWriter, r *http.Request) {
	var cmd services.OpenShiftCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	shift, err := h.shifts.OpenShift(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toShiftResponse(shift))
}

func (h *Handlers) HandleRecordMovement(w http.ResponseWriter, r *http.Request) {
	var cmd services.RecordMovementCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	movement, err := h.shifts.RecordMovement(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toMovementResponse(movement))
}

// HandleCloseShift closes the open shift and returns its Z-report.
// @Summary  Close the current shift
// @Tags     shifts
// @Accept   json
// @Produce  json
// @Param    request  body      services.CloseShiftCommand  true  "Counted closing balance"
// @Success  200      {object}  rest.APIResponse
// @Failure  409      {object}  rest.APIResponse  "No open shift"
// @Router   /shifts/current/close [post]
func (h *Handlers) HandleCloseShift(w http.ResponseWriter, r *http.Request) {
	var cmd services.CloseShiftCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	z, err := h.shifts.CloseShift(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toZReportResponse(z))
}

// @Summary  Z-report for a shift
// @Tags     shifts
// @Produce  json
// @Param    id   path      string  true  "Shift id or current"
// @Success  200  {object}  rest.APIResponse
// @Router   /shifts/{id}/report [get]
func (h *Handlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	z, err := h.shifts.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toZReportResponse(z))
}

func (h *Handlers) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	z, err := h.shifts.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	// Render fully before writing headers so a failure can still answer JSON.
	var buf bytes.Buffer
	if err := report.WriteZReport(&buf, *z); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+report.Filename(z.ShiftID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
