package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthos/synthos/internal/pagecache"
	"github.com/synthos/synthos/internal/provider"
	"github.com/synthos/synthos/pkg/types"
)

func newTestServer(t *testing.T, appConfig *types.Config, providers *provider.Registry) *Server {
	t.Helper()
	cache := pagecache.New(t.TempDir())
	return New(DefaultConfig(), appConfig, cache, providers)
}

func TestGetPage_ReturnsCachedHTML(t *testing.T) {
	s := newTestServer(t, &types.Config{}, nil)
	require.NoError(t, s.cache.Put("home", "<html>hi</html>", "2026-07-29T00:00:00Z"))

	req := httptest.NewRequest(http.MethodGet, "/api/page/home", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "<html>hi</html>", body["html"])
}

func TestGetPage_MissingPageReturns404(t *testing.T) {
	s := newTestServer(t, &types.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/page/missing", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodePageNotFound, resp.Error.Code)
}

func TestTransformPage_MalformedBodyReturns400(t *testing.T) {
	s := newTestServer(t, &types.Config{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/page/home/transform", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransformPage_MissingMessageReturns400(t *testing.T) {
	s := newTestServer(t, &types.Config{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/page/home/transform", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransformPage_NoProviderConfiguredReturns503(t *testing.T) {
	s := newTestServer(t, &types.Config{Provider: "anthropic"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/page/home/transform", bytes.NewBufferString(`{"message": "make the title blue"}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeGatewayMisconfigured, resp.Error.Code)
}

func TestTransformPage_UnconfiguredProviderNameReturns503(t *testing.T) {
	appConfig := types.Config{
		Provider: "anthropic",
		ProviderCredentials: map[string]types.ProviderCredential{
			"openai": {APIKey: "test-key"},
		},
	}
	reg, err := provider.NewRegistry(context.Background(), appConfig)
	require.NoError(t, err)

	s := newTestServer(t, &appConfig, reg)

	req := httptest.NewRequest(http.MethodPost, "/api/page/home/transform", bytes.NewBufferString(`{"message": "make the title blue"}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeGatewayMisconfigured, resp.Error.Code)
}

func TestInvokeScript_UnknownIDReturns404(t *testing.T) {
	s := newTestServer(t, &types.Config{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/scripts/send-email", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvokeScript_KnownScriptEchoesPayload(t *testing.T) {
	appConfig := &types.Config{
		Scripts: map[string]types.ScriptConfig{
			"send-email": {Description: "sends a transactional email", Variables: map[string]string{"to": "string"}},
		},
	}
	s := newTestServer(t, appConfig, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/scripts/send-email", bytes.NewBufferString(`{"to": "a@example.com"}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "send-email", body["id"])
	assert.Equal(t, "sends a transactional email", body["description"])
	received, ok := body["received"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@example.com", received["to"])
}

func TestInvokeScript_DisabledScriptReturns404(t *testing.T) {
	appConfig := &types.Config{
		Scripts: map[string]types.ScriptConfig{
			"send-email": {Description: "sends email", Disabled: true},
		},
	}
	s := newTestServer(t, appConfig, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/scripts/send-email", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
