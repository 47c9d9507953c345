package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"skyharbor/dispatch/internal/models/entities"
)

func TestHealthCheckHandler(t *testing.T) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	upSince := time.Now().Add(-90 * time.Second).Truncate(time.Second)
	handler := HealthCheckHandler(db, upSince)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp entities.HealthCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("overall status = %q, want ok", resp.Status)
	}
	if resp.Services["postgres"].Status != "ok" {
		t.Errorf("db status = %q, want ok", resp.Services["postgres"].Status)
	}
	if !resp.UpSince.Equal(upSince) {
		t.Errorf("up_since = %v, want %v", resp.UpSince, upSince)
	}
	if resp.Uptime == "" {
		t.Error("uptime must be reported")
	}
}
