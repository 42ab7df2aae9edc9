package handlers

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthCheckHealthy(t *testing.T) {
	router, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(mockRowsForSelectOne())

	resp := doJSON(t, router, http.MethodGet, "/health", nil)
	mustStatus(t, resp.Code, http.StatusOK)

	var out map[string]any
	decodeBody(t, resp, &out)
	if out["status"] != "ok" {
		t.Fatalf("unexpected status: %#v", out["status"])
	}
}

func TestHealthCheckUnhealthy(t *testing.T) {
	router, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT 1`).
		WillReturnError(errors.New("connection refused"))

	resp := doJSON(t, router, http.MethodGet, "/health", nil)
	mustStatus(t, resp.Code, http.StatusServiceUnavailable)
}
