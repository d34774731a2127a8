package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/handler"
	"github.com/ncordova/vinoteca/internal/storage"
)

// maxReviewUploadBytes bounds the multipart form size for review submissions.
const maxReviewUploadBytes = 10 << 20 // 10 MiB

// ReviewHandler serves review eligibility and submission.
type ReviewHandler struct {
	reviews domain.ReviewService
	files   storage.Storage
	logger  *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews domain.ReviewService, files storage.Storage, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		files:   files,
		logger:  logger,
	}
}

// Elegibles handles GET /api/reviews/elegibles.
func (h *ReviewHandler) Elegibles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := domain.UserIDFromContext(ctx)

	products, err := h.reviews.EligibleProducts(ctx, userID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"productos": products,
	})
}

// Create handles POST /api/reviews (multipart form).
// Accepts producto_id, comentario, an optional rating, the survey answers
// and up to a handful of images under "imagenes".
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := domain.UserIDFromContext(ctx)

	if err := r.ParseMultipartForm(maxReviewUploadBytes); err != nil {
		handler.RespondError(w, r, domain.Invalid("reviews.create", "Formulario inválido"))
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("producto_id"), 10, 64)
	if err != nil || productID < 1 {
		handler.RespondError(w, r, domain.Invalid("reviews.create", "Identificador de producto inválido"))
		return
	}

	params := domain.CreateReviewParams{
		UserID:    userID,
		ProductID: productID,
		Comment:   r.FormValue("comentario"),
		Survey: domain.SurveyAnswers{
			Sabor:         r.FormValue("sabor"),
			Empaque:       r.FormValue("empaque"),
			Precio:        r.FormValue("precio"),
			Recomendacion: r.FormValue("recomendacion"),
			Entrega:       r.FormValue("entrega"),
		},
	}

	if raw := r.FormValue("rating"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			handler.RespondError(w, r, domain.ErrInvalidRating)
			return
		}
		rating := int32(value)
		params.Rating = &rating
	}

	urls, err := h.storeImages(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	params.ImageURLs = urls

	detail, err := h.reviews.CreateReview(ctx, params)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	imageURLs := make([]string, len(detail.Images))
	for i, img := range detail.Images {
		imageURLs[i] = img.URL
	}

	handler.RespondSuccess(w, http.StatusCreated, map[string]interface{}{
		"review": map[string]interface{}{
			"id":         detail.Review.ID,
			"productoId": detail.Review.ProductID,
			"rating":     detail.Review.Rating,
			"comentario": detail.Review.Comment,
			"imagenes":   imageURLs,
		},
	})
}

// storeImages persists each uploaded file and returns its public URLs.
func (h *ReviewHandler) storeImages(r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["imagenes"]
	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, domain.Invalid("reviews.create", "No se pudo leer la imagen")
		}

		key := "reviews/" + uuid.NewString() + filepath.Ext(header.Filename)
		url, err := h.files.Put(r.Context(), key, file, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return nil, domain.Internal(err, "reviews.create", "failed to store review image")
		}
		urls = append(urls, url)
	}

	return urls, nil
}
