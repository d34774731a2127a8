package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/handler"
	"github.com/ncordova/vinoteca/internal/service"
)

// ShippingHandler serves the standalone shipping quote endpoint.
type ShippingHandler struct {
	quotes   service.QuoteService
	validate *validator.Validate
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler(quotes service.QuoteService) *ShippingHandler {
	return &ShippingHandler{
		quotes:   quotes,
		validate: validator.New(),
	}
}

type quoteRequest struct {
	Items []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// Calcular handles POST /api/shipping/calcular.
// Prices the submitted lines and returns the feature summary alongside the
// shipping cost and total.
func (h *ShippingHandler) Calcular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("shipping.calcular", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("shipping.calcular", "El carrito no puede estar vacío"))
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

	quote, err := h.quotes.Quote(ctx, items)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"resumen": map[string]interface{}{
			"num_productos":        quote.Breakdown.ItemCount,
			"num_items_total":      quote.Breakdown.TotalUnits,
			"tamano_total_ml":      quote.Breakdown.TotalVolumeML,
			"precio_unitario_prom": quote.Breakdown.AverageUnitPrice,
		},
		"calculo": map[string]interface{}{
			"subtotal":    quote.Breakdown.Subtotal,
			"costo_envio": quote.ShippingCost,
			"total":       quote.Total,
		},
	})
}
