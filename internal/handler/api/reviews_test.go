package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/repository"
)

// memStorage records Put calls and serves canned URLs.
type memStorage struct {
	keys []string
}

func (s *memStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "/uploads/" + key, nil
}

func (s *memStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error { return nil }

func (s *memStorage) URL(key string) string { return "/uploads/" + key }

func (s *memStorage) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func reviewForm(t *testing.T, fields map[string]string, imageNames ...string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, name := range imageNames {
		part, err := mw.CreateFormFile("imagenes", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestReviewElegibles(t *testing.T) {
	image := "/uploads/malbec.jpg"
	reviews := &mockReviews{
		EligibleProductsFn: func(ctx context.Context, userID int64) ([]domain.EligibleProduct, error) {
			if userID != 7 {
				t.Errorf("userID = %d, want 7", userID)
			}
			return []domain.EligibleProduct{
				{ProductoID: 1, Name: "Malbec Reserva", ImageURL: &image},
				{ProductoID: 3, Name: "Torrontés"},
			}, nil
		},
	}
	h := NewReviewHandler(reviews, &memStorage{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/reviews/elegibles", nil), 7)
	rec := httptest.NewRecorder()

	h.Elegibles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody(t, rec)
	productos := resp["productos"].([]interface{})
	if len(productos) != 2 {
		t.Fatalf("productos = %v, want 2 entries", resp["productos"])
	}
	first := productos[0].(map[string]interface{})
	if first["productoId"] != float64(1) {
		t.Errorf("productoId = %v, want 1", first["productoId"])
	}
	if first["imageUrl"] != image {
		t.Errorf("imageUrl = %v, want %s", first["imageUrl"], image)
	}
	second := productos[1].(map[string]interface{})
	if second["imageUrl"] != nil {
		t.Errorf("imageUrl = %v, want null", second["imageUrl"])
	}
}

func TestReviewCreate_WithImages(t *testing.T) {
	var gotParams domain.CreateReviewParams
	reviews := &mockReviews{
		CreateReviewFn: func(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error) {
			gotParams = params
			images := make([]repository.ReviewImage, len(params.ImageURLs))
			for i, url := range params.ImageURLs {
				images[i] = repository.ReviewImage{ID: int64(i + 1), ReviewID: 11, URL: url}
			}
			return &domain.ReviewDetail{
				Review: repository.Review{
					ID:        11,
					UserID:    params.UserID,
					ProductID: params.ProductID,
					Comment:   params.Comment,
					Rating:    5,
				},
				Images: images,
			}, nil
		},
	}
	files := &memStorage{}
	h := NewReviewHandler(reviews, files, nil)

	body, contentType := reviewForm(t, map[string]string{
		"producto_id":   "3",
		"comentario":    "Excelente cuerpo y final largo",
		"sabor":         "excelente",
		"empaque":       "bueno",
		"precio":        "justo",
		"recomendacion": "si",
		"entrega":       "rapida",
	}, "botella.jpg", "copa.png")

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/reviews", body), 7)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if gotParams.ProductID != 3 {
		t.Errorf("productID = %d, want 3", gotParams.ProductID)
	}
	if gotParams.Rating != nil {
		t.Errorf("rating = %v, want nil (predicted)", *gotParams.Rating)
	}
	if gotParams.Survey.Sabor != "excelente" || gotParams.Survey.Entrega != "rapida" {
		t.Errorf("survey not mapped: %+v", gotParams.Survey)
	}
	if len(gotParams.ImageURLs) != 2 {
		t.Fatalf("image urls = %v, want 2", gotParams.ImageURLs)
	}
	if len(files.keys) != 2 {
		t.Fatalf("stored keys = %v, want 2", files.keys)
	}
	if !strings.HasPrefix(files.keys[0], "reviews/") || !strings.HasSuffix(files.keys[0], ".jpg") {
		t.Errorf("key = %q, want reviews/<uuid>.jpg", files.keys[0])
	}

	resp := decodeBody(t, rec)
	review := resp["review"].(map[string]interface{})
	if review["rating"] != float64(5) {
		t.Errorf("rating = %v, want 5", review["rating"])
	}
	imagenes := review["imagenes"].([]interface{})
	if len(imagenes) != 2 {
		t.Errorf("imagenes = %v, want 2", review["imagenes"])
	}
}

func TestReviewCreate_SuppliedRating(t *testing.T) {
	reviews := &mockReviews{
		CreateReviewFn: func(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error) {
			if params.Rating == nil || *params.Rating != 4 {
				t.Errorf("rating = %v, want 4", params.Rating)
			}
			return &domain.ReviewDetail{
				Review: repository.Review{ID: 12, ProductID: params.ProductID, Rating: 4},
			}, nil
		},
	}
	h := NewReviewHandler(reviews, &memStorage{}, nil)

	body, contentType := reviewForm(t, map[string]string{
		"producto_id": "3",
		"comentario":  "Muy rico",
		"rating":      "4",
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/reviews", body), 7)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestReviewCreate_InvalidProductID(t *testing.T) {
	h := NewReviewHandler(&mockReviews{}, &memStorage{}, nil)

	body, contentType := reviewForm(t, map[string]string{
		"producto_id": "abc",
		"comentario":  "x",
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/reviews", body), 7)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestReviewCreate_Duplicate(t *testing.T) {
	reviews := &mockReviews{
		CreateReviewFn: func(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error) {
			return nil, domain.ErrDuplicateReview
		},
	}
	h := NewReviewHandler(reviews, &memStorage{}, nil)

	body, contentType := reviewForm(t, map[string]string{
		"producto_id": "3",
		"comentario":  "otra vez",
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/reviews", body), 7)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Ya has reseñado este producto" {
		t.Errorf("message = %v", resp["message"])
	}
}
