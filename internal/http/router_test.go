package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/config"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		GinMode:      gin.TestMode,
		DBPath:       "",
		CatalogLimit: 5,
		SlotsLimit:   5,
		JWTSecret:    "router-test-secret",
		SessionTTL:   time.Hour,
		Admin: config.AdminConfig{
			Email:    "admin@lia.com",
			Password: "s3cret",
			Name:     "Administrador",
		},
		// Generous limits so the limiter never interferes here.
		RateRPS:   1000,
		RateBurst: 1000,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := testConfig()
	if _, err := repo.SeedAdmin(context.Background(), db, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@lia.com",
		"password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (body %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token")
	}
	return resp.Token
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected correlation id on every response")
	}
}

func TestRouter_AdminRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{
		"/api/admin/dashboard",
		"/api/admin/leads",
		"/api/admin/properties",
		"/api/admin/slots",
		"/api/admin/brain",
	} {
		if w := doJSON(t, r, http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d; want 401", path, w.Code)
		}
	}
}

func TestRouter_AgentRoutesUnauthenticated(t *testing.T) {
	r := newTestRouter(t)
	if w := doJSON(t, r, http.MethodGet, "/api/lia/context", "", nil); w.Code != http.StatusOK {
		t.Fatalf("context status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodGet, "/api/lia/slots", "", nil); w.Code != http.StatusOK {
		t.Fatalf("slots status = %d; want 200", w.Code)
	}
}

func TestRouter_LoginThenGuardedAccess(t *testing.T) {
	r := newTestRouter(t)
	token := loginToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/admin/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}

	var stats map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if _, ok := stats["totalLeads"]; !ok {
		t.Fatalf("missing totalLeads in %v", stats)
	}
}

func TestRouter_BookingFlowEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := loginToken(t, r)

	// Admin opens a slot for next year.
	at := time.Now().UTC().AddDate(1, 0, 0).Truncate(time.Hour)
	w := doJSON(t, r, http.MethodPost, "/api/admin/slots", token, map[string]any{"date": at.Format(time.RFC3339)})
	if w.Code != http.StatusCreated {
		t.Fatalf("create slot status = %d (body %s)", w.Code, w.Body.String())
	}
	var slot struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &slot); err != nil {
		t.Fatalf("decode slot: %v", err)
	}

	// The agent sees it offered.
	w = doJSON(t, r, http.MethodGet, "/api/lia/slots", "", nil)
	var offers []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &offers); err != nil {
		t.Fatalf("decode offers: %v", err)
	}
	if len(offers) != 1 || offers[0]["id"] != slot.ID {
		t.Fatalf("unexpected offers: %v", offers)
	}

	// First booking wins.
	book := map[string]string{"slotId": slot.ID, "phone": "5511999998888", "name": "Maria Souza"}
	w = doJSON(t, r, http.MethodPost, "/api/lia/schedule", "", book)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule status = %d (body %s)", w.Code, w.Body.String())
	}
	var confirm struct {
		Success bool `json:"success"`
		Data    struct {
			Cliente string `json:"cliente"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &confirm); err != nil {
		t.Fatalf("decode confirmation: %v", err)
	}
	if !confirm.Success || confirm.Data.Cliente != "Maria Souza" {
		t.Fatalf("unexpected confirmation: %+v", confirm)
	}

	// A second attempt on the same slot conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/lia/schedule", "", book)
	if w.Code != http.StatusConflict {
		t.Fatalf("rebooking status = %d; want 409 (body %s)", w.Code, w.Body.String())
	}

	// The booked lead now blocks its own deletion.
	w = doJSON(t, r, http.MethodGet, "/api/admin/leads", token, nil)
	var page struct {
		Leads []struct {
			ID string `json:"id"`
		} `json:"leads"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode leads: %v", err)
	}
	if len(page.Leads) != 1 {
		t.Fatalf("leads = %d; want 1", len(page.Leads))
	}
	w = doJSON(t, r, http.MethodDelete, "/api/admin/leads/"+page.Leads[0].ID, token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("delete booked lead status = %d; want 409", w.Code)
	}
}

func TestRouter_NoRouteAndNoMethodEnvelopes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "not_found" {
		t.Fatalf("code = %q; want not_found", body["code"])
	}

	w = doJSON(t, r, http.MethodDelete, "/health", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d; want 405", w.Code)
	}
}

func TestRouter_CORSDefaultAllowsAll(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("ACAO = %q; want *", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
