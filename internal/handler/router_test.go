package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thelab/fan-chat/backend/internal/handler/app"
	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
)

func TestRouterMountsAPI(t *testing.T) {
	router := NewRouter(app.DefaultInfo(), chatService.NewService(nil), nil)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/app", "", http.StatusOK},
		{http.MethodPost, "/api/session", "", http.StatusCreated},
		{http.MethodGet, "/api/session/missing/messages", "", http.StatusNotFound},
		{http.MethodPost, "/api/stream/missing", `{"content":"hi"}`, http.StatusNotFound},
		{http.MethodGet, "/api/feedback/form", "", http.StatusOK},
		{http.MethodPost, "/api/feedback", `{"text":"x","mood":"😀 Happy"}`, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte(tc.body)))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
	}
}
