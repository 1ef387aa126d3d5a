package handlers

import (
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
)

type AdvanceStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required,oneof=preparing ready delivering delivered cancelled" example:"preparing"`
}

// HandlePlaceOrder prices and stores a cart.
// @Summary      Place an order
// @Description  Prices every line against the live menu and stores the order with its lines in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID      header    int                          true  "Tenant id"
// @Param        X-Restaurant-ID  header    int                          true  "Restaurant id"
// @Param        request          body      services.PlaceOrderCommand  true  "Cart"
// @Success      201              {object}  rest.APIResponse
// @Failure      400              {object}  rest.APIResponse
// @Failure      422              {object}  rest.APIResponse  "Selection invalid"
// @Router       /orders [post]
func (h *Handlers) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd services.PlaceOrderCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toOrderResponse(order))
}

// HandleGetOrder returns the order with its payment status.
// @Summary  Get order status
// @Tags     orders
// @Produce  json
// @Param    id   path      int  true  "Order id"
// @Success  200  {object}  rest.APIResponse
// @Failure  404  {object}  rest.APIResponse
// @Router   /orders/{id} [get]
func (h *Handlers) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handlers) HandleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var req AdvanceStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.AdvanceStatus(r.Context(), id, req.Status)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handlers) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	order, err := h.orders.Cancel(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}
