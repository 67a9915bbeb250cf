package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/pkg/observe"
)

func TestBreakerClient_PassesThroughServerErrors(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	client := NewBreakerClient("test", http.DefaultClient, 3, time.Minute, observe.NewZapLogger("test-app"))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, mockServer.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestBreakerClient_OpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	client := NewBreakerClient("test", http.DefaultClient, 2, time.Minute, observe.NewZapLogger("test-app"))

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, mockServer.URL, nil)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	req, _ := http.NewRequest(http.MethodGet, mockServer.URL, nil)
	_, err := client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), calls.Load())
}
