package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"userhub/internal/repository"
	"userhub/internal/service"
)

// setupRouter wires a real handler→service→repository pipeline over a
// sqlmock database, so handler tests exercise the whole request path.
func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := service.NewUserService(repository.NewUserRepo(db))

	router := gin.New()
	router.GET("/health", HealthCheck(db))
	api := router.Group("/api")
	api.GET("/status", Status)
	NewUserHandler(svc).Register(api)

	return router, mock
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("json.Unmarshal %q: %v", resp.Body.String(), err)
	}
}

func mustExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "surname", "email", "birthdate", "additional_info"})
}

func mockRowsForSelectOne() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"?column?"}).AddRow(1)
}

func validUserBody() map[string]any {
	return map[string]any{
		"name":      "Anna",
		"surname":   "Kovalenko",
		"email":     "anna@example.com",
		"birthdate": "1990-04-17",
	}
}
