package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/config"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/chart"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/diagram"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/image"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/infographic"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/layout"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/orchestrator"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/table"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/text"
)

// newTestRouter wires the full stack against one stub server that plays
// every backend plus the Layout Service.
func newTestRouter(t *testing.T, genPerMinute int) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ai/chart/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"chartConfig": {"type": "bar"}, "generationId": "gen-1"}}`))
	})
	mux.HandleFunc("/api/presentations/pres-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"slides": []interface{}{map[string]interface{}{"slide_id": "s-0"}},
		})
	})
	mux.HandleFunc("/api/presentations/pres-1/slides/0", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	poll := diagram.PollConfig{Timeout: 200 * time.Millisecond, Interval: 5 * time.Millisecond, MaxInterval: 20 * time.Millisecond}
	svc := orchestrator.New(
		chart.NewClient(srv.URL, time.Second, log),
		diagram.NewClient(srv.URL, time.Second, poll, 60, log),
		text.NewClient(srv.URL, time.Second, log),
		table.NewClient(srv.URL, time.Second, log),
		image.NewClient(srv.URL, time.Second, log),
		infographic.NewClient(srv.URL, time.Second, log),
		layout.NewClient(srv.URL, time.Second, log),
		log,
	)

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Limiter.GenerationPerMinute = genPerMinute
	cfg.Limiter.MetadataPerMinute = 60
	return NewRouter(svc, cfg, log)
}

func chartBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"element_id": "el-1",
		"context": map[string]interface{}{
			"presentation_id":    "pres-1",
			"presentation_title": "Q3 Review",
			"slide_id":           "s-0",
			"slide_index":        0,
			"slide_count":        1,
		},
		"position":      map[string]string{"grid_row": "1/15", "grid_column": "1/25"},
		"chart_type":    "bar",
		"generate_data": true,
	})
	return body
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateChartRoute(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodPost, "/api/generate/chart", chartBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "el-1", resp["element_id"])
	assert.Equal(t, true, resp["injected"])
}

func TestGenerateChartBadJSON(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodPost, "/api/generate/chart", []byte(`{"element_id":`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestGenerationRateLimitPerPresentation(t *testing.T) {
	r := newTestRouter(t, 1)

	first := do(r, http.MethodPost, "/api/generate/chart", chartBody())
	require.Equal(t, http.StatusOK, first.Code)

	second := do(r, http.MethodPost, "/api/generate/chart", chartBody())
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "RATE_LIMITED", errObj["code"])
	assert.Equal(t, true, errObj["retryable"])
}

func TestTablePresetsRoute(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodGet, "/api/generate/table/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	presets := resp["presets"].([]interface{})
	assert.NotEmpty(t, presets)
	assert.Contains(t, w.Body.String(), "professional")
}

func TestTextConstraintsRejectsBadDimensions(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodGet, "/api/generate/text/constraints/0/4", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/generate/text/constraints/6/9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "up", resp["layout"])
}

func TestCatalogRoute(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/generate/batch")
}

func TestClearCacheRoute(t *testing.T) {
	r := newTestRouter(t, 60)

	w := do(r, http.MethodPost, "/api/generate/chart/clear-cache", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cleared":"chart"`)
}
