package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/domain"
)

// MockEngine for testing
type MockEngine struct {
	ExpandFunc func(ctx context.Context, path string, mode domain.ContextMode) (string, error)
	WatchFunc  func(ctx context.Context) (<-chan string, error)
}

func (m *MockEngine) Expand(ctx context.Context, path string, mode domain.ContextMode) (string, error) {
	return m.ExpandFunc(ctx, path, mode)
}
func (m *MockEngine) ExpandText(ctx context.Context, text, path string, mode domain.ContextMode) (string, error) {
	return text, nil
}
func (m *MockEngine) Notes(ctx context.Context) ([]domain.Note, error) { return nil, nil }
func (m *MockEngine) Watch(ctx context.Context) (<-chan string, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx)
	}
	return nil, errors.New("not supported")
}

func newEngine(t *testing.T) *scribe.Engine {
	t.Helper()
	store := memory.NewFromFiles(map[string]string{
		"a.md":       `A<% include "b" %>`,
		"b.md":       "B",
		"self.md":    `<% include "self" %>`,
		"notes/n.md": "n",
	})
	eng, err := scribe.New("", scribe.WithStore(store))
	require.NoError(t, err)
	return eng
}

func post(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/expand", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestExpand_Document(t *testing.T) {
	h := NewHandler(newEngine(t))

	w := post(t, h, ExpandRequest{Path: "a.md"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ExpandResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "AB", resp.Output)
}

func TestExpand_Text(t *testing.T) {
	h := NewHandler(newEngine(t))
	text := `<% title %>: <% include "b" %>`

	w := post(t, h, ExpandRequest{Path: "a.md", Text: &text, Mode: "internal"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ExpandResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "a: B", resp.Output)
}

func TestExpand_ErrorStatus(t *testing.T) {
	h := NewHandler(newEngine(t))

	tests := []struct {
		path   string
		status int
		kind   string
	}{
		{"missing.md", http.StatusNotFound, "not_found"},
		{"notes", http.StatusConflict, "target_is_container"},
		{"self.md", http.StatusUnprocessableEntity, "depth_limit_exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := post(t, h, ExpandRequest{Path: tt.path})
			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

func TestExpand_BadRequests(t *testing.T) {
	h := NewHandler(&MockEngine{})

	req := httptest.NewRequest("POST", "/expand", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, ExpandRequest{Path: "a.md", Mode: "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, ExpandRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify(t *testing.T) {
	tests := map[error]int{
		domain.ErrTargetNotFound:         http.StatusNotFound,
		domain.ErrUnsupportedEnvironment: http.StatusNotImplemented,
		domain.ErrInvalidAdapter:         http.StatusInternalServerError,
		domain.ErrNoActiveView:           http.StatusConflict,
		errors.New("other"):              http.StatusInternalServerError,
	}
	for err, want := range tests {
		status, _ := classify(fmt.Errorf("wrapped: %w", err))
		assert.Equal(t, want, status, err.Error())
	}
}

func TestHealthInfoAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	h := NewHandler(&MockEngine{}, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	for path, want := range map[string]string{
		"/healthz": `"status":"ok"`,
		"/info":    `"app":"scribe-http"`,
		"/metrics": "probe_total 1",
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
	}
}

func TestSubscribeEvents(t *testing.T) {
	mockEng := &MockEngine{
		WatchFunc: func(ctx context.Context) (<-chan string, error) {
			ch := make(chan string, 1)
			ch <- "notes/a.md"
			close(ch)
			return ch, nil
		},
	}
	h := NewHandler(mockEng)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "data: notes/a.md")
}

func TestSubscribeEvents_Unsupported(t *testing.T) {
	h := NewHandler(&MockEngine{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
