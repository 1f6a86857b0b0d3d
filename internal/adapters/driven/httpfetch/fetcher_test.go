package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "landscape2", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<svg>1</svg>"))
	}))
	defer server.Close()

	data, err := New(nil).Fetch(context.Background(), server.URL+"/logo.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg>1</svg>", string(data))
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(nil).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := New(&http.Client{Timeout: 20 * time.Millisecond}).Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetcher_InvalidURL(t *testing.T) {
	_, err := New(nil).Fetch(context.Background(), "://bad")
	assert.Error(t, err)
}
