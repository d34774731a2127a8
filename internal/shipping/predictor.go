package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout bounds a prediction request. The upstream service has no
// SLA, so a hung call must not hold the checkout request open.
const DefaultTimeout = 10 * time.Second

// PredictorClient is the HTTP implementation of Estimator backed by the
// external prediction service.
type PredictorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPredictorClient creates an Estimator against the given base URL.
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
	CostoEnvioEstimado *float64 `json:"costo_envio_estimado"`
}

// EstimateCost implements Estimator. Single attempt: any transport error,
// non-2xx status, or missing cost field maps to ErrEstimatorUnavailable.
func (c *PredictorClient) EstimateCost(ctx context.Context, features FeatureVector) (float64, error) {
	if features.NumProducts <= 0 || features.NumItemsTotal <= 0 {
		return 0, ErrInvalidFeatures
	}

	query := url.Values{}
	query.Set("num_productos", strconv.Itoa(features.NumProducts))
	query.Set("num_items_total", strconv.Itoa(features.NumItemsTotal))
	query.Set("tamano_total_ml", strconv.Itoa(features.TotalVolumeML))
	query.Set("precio_unitario_prom", strconv.FormatFloat(features.AvgUnitPrice, 'f', 2, 64))

	endpoint := fmt.Sprintf("%s/predecir-envio?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, ErrEstimatorUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, ErrEstimatorUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, ErrEstimatorUnavailable
	}

	var body predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, ErrEstimatorUnavailable
	}
	if body.CostoEnvioEstimado == nil || *body.CostoEnvioEstimado < 0 {
		return 0, ErrEstimatorUnavailable
	}

	return *body.CostoEnvioEstimado, nil
}

var _ Estimator = (*PredictorClient)(nil)
