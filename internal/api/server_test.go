package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/justicejet/defensepack/internal/model"
)

func TestNewHandler_CORSPreflight(t *testing.T) {
	h := newTestHandler(new(mockService), new(mockExtractor))

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-learning", nil)
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_UnknownRoute(t *testing.T) {
	h := newTestHandler(new(mockService), new(mockExtractor))

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewHandler_Throttles(t *testing.T) {
	svc := new(mockService)
	svc.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(model.SearchResponse{Results: []model.QueryResult{}})

	cfg := testServerConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	h := NewHandler(Deps{Service: svc, Extractor: new(mockExtractor), Server: cfg})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/legal-search", strings.NewReader(`{"query":"q"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	// Health is outside the throttled group.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewHandler_RecoversPanics(t *testing.T) {
	svc := new(mockService)
	svc.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("boom") })

	req := httptest.NewRequest(http.MethodPost, "/api/legal-search", strings.NewReader(`{"query":"q"}`))
	rr := httptest.NewRecorder()
	newTestHandler(svc, new(mockExtractor)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
