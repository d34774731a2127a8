package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout bounds a recommendation request.
const DefaultTimeout = 10 * time.Second

// ErrMissingBaseURL is returned when the recommender base URL is not configured.
var ErrMissingBaseURL = errors.New("recommender base URL is required")

// Client is the HTTP implementation of Recommender.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Recommender against the given base URL.
// A zero timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// recommendResponse is the wire shape of the recommendation service.
type recommendResponse struct {
	IDsRecomendados []int64 `json:"ids_recomendados"`
}

// RecommendProducts implements Recommender.
func (c *Client) RecommendProducts(ctx context.Context, productID int64) ([]int64, error) {
	query := url.Values{}
	query.Set("ids", strconv.FormatInt(productID, 10))

	endpoint := fmt.Sprintf("%s/recomendar?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ErrRecommenderUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrRecommenderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrRecommenderUnavailable
	}

	var body recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, ErrRecommenderUnavailable
	}

	return body.IDsRecomendados, nil
}

var _ Recommender = (*Client)(nil)
