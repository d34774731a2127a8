package shipping_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ncordova/vinoteca/internal/shipping"
)

func TestPredictorClient_EstimateCost(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"num_productos":        q.Get("num_productos"),
			"num_items_total":      q.Get("num_items_total"),
			"tamano_total_ml":      q.Get("tamano_total_ml"),
			"precio_unitario_prom": q.Get("precio_unitario_prom"),
		}
		assert.Equal(t, "/predecir-envio", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"costo_envio_estimado": 85.5}`))
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 0)
	assert.NoError(t, err)

	cost, err := client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts:   2,
		NumItemsTotal: 5,
		TotalVolumeML: 3750,
		AvgUnitPrice:  93.4,
	})

	assert.NoError(t, err)
	assert.Equal(t, 85.5, cost)
	assert.Equal(t, "2", gotQuery["num_productos"])
	assert.Equal(t, "5", gotQuery["num_items_total"])
	assert.Equal(t, "3750", gotQuery["tamano_total_ml"])
	assert.Equal(t, "93.40", gotQuery["precio_unitario_prom"])
}

func TestPredictorClient_ZeroCostIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"costo_envio_estimado": 0}`))
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 0)
	assert.NoError(t, err)

	cost, err := client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts: 1, NumItemsTotal: 1, TotalVolumeML: 750, AvgUnitPrice: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}

func TestPredictorClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 0)
	assert.NoError(t, err)

	_, err = client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts: 1, NumItemsTotal: 2, TotalVolumeML: 1500, AvgUnitPrice: 50,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shipping.ErrEstimatorUnavailable))
}

func TestPredictorClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 0)
	assert.NoError(t, err)

	_, err = client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts: 1, NumItemsTotal: 1, TotalVolumeML: 750, AvgUnitPrice: 25,
	})

	assert.True(t, errors.Is(err, shipping.ErrEstimatorUnavailable))
}

func TestPredictorClient_MissingCostField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"otro_campo": 12}`))
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 0)
	assert.NoError(t, err)

	_, err = client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts: 1, NumItemsTotal: 1, TotalVolumeML: 750, AvgUnitPrice: 25,
	})

	assert.True(t, errors.Is(err, shipping.ErrEstimatorUnavailable))
}

func TestPredictorClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"costo_envio_estimado": 10}`))
	}))
	defer server.Close()

	client, err := shipping.NewPredictorClient(server.URL, 20*time.Millisecond)
	assert.NoError(t, err)

	_, err = client.EstimateCost(context.Background(), shipping.FeatureVector{
		NumProducts: 1, NumItemsTotal: 1, TotalVolumeML: 750, AvgUnitPrice: 25,
	})

	assert.True(t, errors.Is(err, shipping.ErrEstimatorUnavailable))
}

func TestPredictorClient_RequiresBaseURL(t *testing.T) {
	client, err := shipping.NewPredictorClient("", 0)

	assert.Nil(t, client)
	assert.True(t, errors.Is(err, shipping.ErrMissingBaseURL))
}

func TestPredictorClient_RejectsEmptyFeatures(t *testing.T) {
	client, err := shipping.NewPredictorClient("http://localhost:9", 0)
	assert.NoError(t, err)

	_, err = client.EstimateCost(context.Background(), shipping.FeatureVector{})

	assert.True(t, errors.Is(err, shipping.ErrInvalidFeatures))
}

func TestMockEstimator_RecordsCalls(t *testing.T) {
	mock := shipping.NewMockEstimator(42)

	cost, err := mock.EstimateCost(context.Background(), shipping.FeatureVector{NumProducts: 1})

	assert.NoError(t, err)
	assert.Equal(t, 42.0, cost)
	assert.Len(t, mock.Calls, 1)
}
