package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/handler"
)

// OrderHandler serves the PayPal create/capture checkout endpoints.
type OrderHandler struct {
	checkout domain.CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout domain.CheckoutService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		checkout: checkout,
		validate: validator.New(),
		logger:   logger,
	}
}

type orderLineRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int32   `json:"quantity" validate:"required,gte=1"`
	SizeML   int32   `json:"size_ml" validate:"gte=0"`
}

type createOrderRequest struct {
	Items []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	Total float64            `json:"total" validate:"gte=0"`
}

// Create handles POST /api/orders/paypal/create.
// Recomputes the total server-side, verifies it against the submitted total
// and opens a gateway order for client approval.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := domain.UserIDFromContext(ctx)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("orders.create", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("orders.create", "Datos de la orden inválidos"))
		return
	}

	items := make([]domain.CartLineItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = domain.CartLineItem{
			ProductID: line.ID,
			Name:      line.Name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			SizeML:    line.SizeML,
		}
	}

	orderID, err := h.checkout.CreateOrder(ctx, userID, items, req.Total)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusCreated, map[string]interface{}{
		"orderId": orderID,
	})
}

type captureOrderRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// Capture handles POST /api/orders/paypal/capture.
// Captures the approved gateway order and persists it atomically.
func (h *OrderHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := domain.UserIDFromContext(ctx)

	var req captureOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("orders.capture", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("orders.capture", "Falta el identificador de la orden"))
		return
	}

	result, err := h.checkout.CaptureOrder(ctx, userID, req.OrderID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if result.Replayed {
		h.logger.InfoContext(ctx, "capture replayed",
			slog.String("gateway_order_id", result.GatewayOrderID),
			slog.Int64("order_id", result.OrderID))
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"pedidoId": result.OrderID,
		"orderId":  result.GatewayOrderID,
		"total":    result.Total,
	})
}
