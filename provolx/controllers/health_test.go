package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	hc := NewHealthController("gemini-2.0-flash-exp")
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	hc.HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rr.Body.String(), err)
	}
	if body["status"] != "healthy" || body["model"] != "gemini-2.0-flash-exp" {
		t.Errorf("unexpected body %v", body)
	}

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %v", rr.Header().Get("Content-Type"))
	}
}

func TestRoot(t *testing.T) {
	hc := NewHealthController("m-1")
	rr := httptest.NewRecorder()

	hc.Root(rr, httptest.NewRequest("GET", "/", nil))

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	want := map[string]string{
		"message": ServiceName,
		"status":  "active",
		"version": "2.0.0",
		"model":   "m-1",
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, body[k])
		}
	}
}
