package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/handler"
	"github.com/ncordova/vinoteca/internal/repository"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products domain.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products domain.ProductService) *ProductHandler {
	return &ProductHandler{
		products: products,
		validate: validator.New(),
	}
}

// productJSON is the wire shape for a catalog entry.
type productJSON struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Flavor      string   `json:"flavor"`
	SizeML      int32    `json:"size_ml"`
	Stock       int32    `json:"stock"`
	Images      []string `json:"images"`
}

func toProductJSON(detail domain.ProductDetail) productJSON {
	images := make([]string, len(detail.Images))
	for i, img := range detail.Images {
		images[i] = img.URL
	}
	return productJSON{
		ID:          detail.Product.ID,
		Name:        detail.Product.Name,
		Description: detail.Product.Description,
		Price:       detail.Product.Price,
		Flavor:      detail.Product.Flavor,
		SizeML:      detail.Product.SizeML,
		Stock:       detail.Product.Stock,
		Images:      images,
	}
}

func toProductList(details []domain.ProductDetail) []productJSON {
	list := make([]productJSON, len(details))
	for i, d := range details {
		list[i] = toProductJSON(d)
	}
	return list
}

// pathID extracts the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.products.ListProducts(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"productos": toProductList(details),
	})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.get", "Identificador de producto inválido"))
		return
	}

	detail, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"producto": toProductJSON(*detail),
	})
}

// Recomendados handles GET /api/products/{id}/recomendados.
// The recommendation service is advisory: failures yield an empty list.
func (h *ProductHandler) Recomendados(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.recomendados", "Identificador de producto inválido"))
		return
	}

	details, err := h.products.RecommendedProducts(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"recomendados": toProductList(details),
	})
}

// Promociones handles GET /api/products/promociones.
func (h *ProductHandler) Promociones(w http.ResponseWriter, r *http.Request) {
	listing, err := h.products.PromotionListing(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	conDescuento := make([]map[string]interface{}, len(listing.ConDescuento))
	for i, d := range listing.ConDescuento {
		conDescuento[i] = map[string]interface{}{
			"id":               d.Product.ID,
			"name":             d.Product.Name,
			"price":            d.Product.Price,
			"descuento":        d.Discount,
			"precio_descuento": d.DiscountedPrice,
		}
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"con_descuento": conDescuento,
		"sin_descuento": toPlainProducts(listing.SinDescuento),
	})
}

// BajoStock handles GET /api/products/bajo-stock (admin).
func (h *ProductHandler) BajoStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.LowStockProducts(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"productos": toPlainProducts(products),
	})
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Flavor      string   `json:"flavor"`
	SizeML      int32    `json:"size_ml" validate:"gte=0"`
	Stock       int32    `json:"stock" validate:"gte=0"`
	ImageURLs   []string `json:"images"`
}

// Create handles POST /api/products (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create", "Datos del producto inválidos"))
		return
	}

	detail, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Flavor:      req.Flavor,
		SizeML:      req.SizeML,
		Stock:       req.Stock,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusCreated, map[string]interface{}{
		"producto": toProductJSON(*detail),
	})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Flavor      *string  `json:"flavor"`
	SizeML      *int32   `json:"size_ml" validate:"omitempty,gte=0"`
	Stock       *int32   `json:"stock" validate:"omitempty,gte=0"`
}

// Update handles PUT /api/products/{id} (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.update", "Identificador de producto inválido"))
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.update", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.update", "Datos del producto inválidos"))
		return
	}

	detail, err := h.products.UpdateProduct(r.Context(), id, domain.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Flavor:      req.Flavor,
		SizeML:      req.SizeML,
		Stock:       req.Stock,
	})
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"producto": toProductJSON(*detail),
	})
}

// Delete handles DELETE /api/products/{id} (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.delete", "Identificador de producto inválido"))
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{})
}

type promoRequest struct {
	ProductID int64   `json:"producto_id" validate:"required,gt=0"`
	Discount  float64 `json:"descuento" validate:"required,gt=0,lte=100"`
	StartsAt  string  `json:"inicia" validate:"required"`
	EndsAt    string  `json:"termina" validate:"required"`
}

// CreatePromotion handles POST /api/products/promociones (admin).
func (h *ProductHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create_promotion", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create_promotion", "Datos de la promoción inválidos"))
		return
	}

	startsAt, err := parseDate(req.StartsAt)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create_promotion", "Fecha de inicio inválida"))
		return
	}
	endsAt, err := parseDate(req.EndsAt)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("products.create_promotion", "Fecha de fin inválida"))
		return
	}

	promo, err := h.products.CreatePromotion(r.Context(), domain.CreatePromotionParams{
		ProductID: req.ProductID,
		Discount:  req.Discount,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusCreated, map[string]interface{}{
		"promocion": map[string]interface{}{
			"id":          promo.ID,
			"producto_id": promo.ProductID,
			"descuento":   promo.Discount,
			"inicia":      promo.StartsAt,
			"termina":     promo.EndsAt,
		},
	})
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// toPlainProducts maps catalog rows without image joins.
func toPlainProducts(products []repository.Product) []productJSON {
	list := make([]productJSON, len(products))
	for i, p := range products {
		list[i] = productJSON{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Flavor:      p.Flavor,
			SizeML:      p.SizeML,
			Stock:       p.Stock,
			Images:      []string{},
		}
	}
	return list
}
