package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/blogcraft/internal/config"
	"github.com/phrazzld/blogcraft/internal/mocks"
	"github.com/phrazzld/blogcraft/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Client: config.ClientConfig{Timeout: 5 * time.Second},
	}
}

func TestUnconfiguredEndpointAnswersServiceUnavailable(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), testConfig(), l)
	require.NoError(t, err)
	assert.Nil(t, app.backend)

	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(`{"topic":"Edge computing"}`)))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ConfigurationError", resp["kind"])
}

func TestBackendServesContract(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Backend = config.BackendConfig{Enabled: true, ProxyEnvelope: true}

	l, _ := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, l, &mocks.MockModel{Text: "Dev post"})
	require.NoError(t, err)
	require.NotNil(t, app.backend)

	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, httptest.NewRequest(http.MethodPost, backendPath, strings.NewReader(`{"blog_topic":"x"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Body string `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.JSONEq(t, `{"message":"Blog Generation completed","generated":true,"content":"Dev post"}`, envelope.Body)
}

func TestBridgeThroughBackend(t *testing.T) {
	t.Parallel()

	// serve the backend on its own listener so the bridge's client can reach it
	l, _ := logger.NewTestLogger(t)
	backendApp, err := newApplication(context.Background(), &config.Config{
		Server:  config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Client:  config.ClientConfig{Endpoint: "https://unused.example.com"},
		Backend: config.BackendConfig{Enabled: true},
	}, l, &mocks.MockModel{Text: "End to end post"})
	require.NoError(t, err)

	srv := httptest.NewServer(backendApp.routes())
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.Client.Endpoint = srv.URL + backendPath
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(`{"topic":"Edge computing"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog Generation completed","content":"End to end post"}`, w.Body.String())
}
