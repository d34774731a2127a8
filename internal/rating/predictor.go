package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a prediction request.
const DefaultTimeout = 10 * time.Second

// ErrMissingBaseURL is returned when the predictor base URL is not configured.
var ErrMissingBaseURL = errors.New("rating predictor base URL is required")

// PredictorClient is the HTTP implementation of Predictor.
type PredictorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPredictorClient creates a Predictor against the given base URL.
// A zero timeout falls back to DefaultTimeout.
func NewPredictorClient(baseURL string, timeout time.Duration) (*PredictorClient, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &PredictorClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// predictionResponse is the wire shape of the prediction service.
type predictionResponse struct {
	Redondeado *int32 `json:"redondeado"`
}

// PredictRating implements Predictor. Single attempt: any transport
// error, non-2xx status, or missing field maps to ErrPredictorUnavailable.
func (c *PredictorClient) PredictRating(ctx context.Context, answers Answers) (int32, error) {
	query := url.Values{}
	query.Set("sabor", answers.Sabor)
	query.Set("empaque", answers.Empaque)
	query.Set("precio", answers.Precio)
	query.Set("recomendacion", answers.Recomendacion)
	query.Set("entrega", answers.Entrega)

	endpoint := fmt.Sprintf("%s/predecir?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, ErrPredictorUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, ErrPredictorUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, ErrPredictorUnavailable
	}

	var body predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, ErrPredictorUnavailable
	}
	if body.Redondeado == nil || *body.Redondeado < 1 || *body.Redondeado > 5 {
		return 0, ErrPredictorUnavailable
	}

	return *body.Redondeado, nil
}

var _ Predictor = (*PredictorClient)(nil)
