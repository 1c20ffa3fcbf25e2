package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/test", r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body bytes"))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, Timeout: 2 * time.Second})

	resp, err := c.Get(context.Background(), "/api/test")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, []byte("body bytes"), resp.Body)
}

func TestClientGetFuncOverride(t *testing.T) {
	c := &Client{
		GetFunc: func(_ context.Context, path string) (*Response, error) {
			return &Response{StatusCode: http.StatusOK, Body: []byte(path)}, nil
		},
	}

	resp, err := c.Get(context.Background(), "/anything")
	require.NoError(t, err)
	assert.Equal(t, []byte("/anything"), resp.Body)
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/slow")
	require.Error(t, err)
}
