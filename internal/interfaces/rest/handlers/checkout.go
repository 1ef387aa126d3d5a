package handlers

import (
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
)

type SubscriptionCheckoutRequest struct {
	PlanCode string `json:"plan_code" validate:"required,max=64" example:"pro-3"`
}

// HandleOrderCheckout signs the order amount and opens a payment session.
// @Summary      Start card payment for an order
// @Tags         checkout
// @Produce      json
// @Param        id   path      int  true  "Order id"
// @Success      201  {object}  rest.APIResponse  "Redirect URL and session token"
// @Failure      409  {object}  rest.APIResponse  "Order already paid"
// @Failure      422  {object}  rest.APIResponse  "Card payments unavailable"
// @Failure      502  {object}  rest.APIResponse  "Gateway signing failed"
// @Router       /orders/{id}/checkout [post]
func (h *Handlers) HandleOrderCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.checkout.StartOrderPayment(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toCheckoutResponse(result))
}

// @Summary  Start subscription payment
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    request  body      SubscriptionCheckoutRequest  true  "Plan"
// @Success  201      {object}  rest.APIResponse
// @Router   /subscriptions/checkout [post]
func (h *Handlers) HandleSubscriptionCheckout(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionCheckoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.checkout.StartSubscriptionPayment(r.Context(), req.PlanCode)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toCheckoutResponse(result))
}
