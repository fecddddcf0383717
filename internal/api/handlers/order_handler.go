package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"storefront-service/internal/metrics"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type OrderHandler struct {
	repo         repository.OrderRepository
	exposeDetail bool
}

// NewOrderHandler builds the checkout handler. With exposeDetail the raw
// failure text is returned to the caller in "detail".
func NewOrderHandler(repo repository.OrderRepository, exposeDetail bool) *OrderHandler {
	return &OrderHandler{repo: repo, exposeDetail: exposeDetail}
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req models.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rejectPayload(w, log, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.rejectPayload(w, log, err)
		return
	}

	order, err := h.repo.CreateOrder(r.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			h.rejectPayload(w, log, err)
			return
		}

		metrics.OrdersTotal.WithLabelValues(metrics.OrderFailed).Inc()
		log.Error().Err(err).Int("items", len(req.Items)).Msg("checkout failed")

		detail := ""
		if h.exposeDetail {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "checkout_failed", detail)
		return
	}

	metrics.OrdersTotal.WithLabelValues(metrics.OrderCreated).Inc()
	log.Info().
		Str("order_code", order.OrderCode).
		Int("items", len(order.Items)).
		Msg("order created")

	writeJSON(w, http.StatusOK, checkoutResponse{OrderID: order.OrderCode})
}

func (h *OrderHandler) rejectPayload(w http.ResponseWriter, log *zerolog.Logger, err error) {
	metrics.OrdersTotal.WithLabelValues(metrics.OrderInvalid).Inc()
	log.Debug().Err(err).Msg("invalid checkout payload")
	writeError(w, http.StatusBadRequest, "invalid_payload", "")
}
