package handlers

import (
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
)

// @Summary  Accepted payment methods
// @Tags     settings
// @Produce  json
// @Success  200  {object}  rest.APIResponse
// @Failure  404  {object}  rest.APIResponse
// @Router   /payment-settings [get]
func (h *Handlers) HandleGetPaymentSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.settings.GetPaymentSettings(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, view)
}
