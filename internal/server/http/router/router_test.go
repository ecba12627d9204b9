package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/metrics"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	pkgAuth "github.com/kitkatcodeskitty/lms-migrate/internal/pkg/auth"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/handlers"
)

type facadeStub struct {
	targets []string
}

func (f *facadeStub) Login(context.Context, string, string) (string, error) { return "token", nil }

func (f *facadeStub) ParseToken(token string) (string, error) {
	if token != "token" {
		return "", pkgAuth.ErrInvalidToken
	}
	return "operator", nil
}

func (f *facadeStub) Status(context.Context) ([]model.MigrationStatus, error) {
	return []model.MigrationStatus{{Name: migration.WithdrawalIndexesName}}, nil
}

func (f *facadeStub) Up(_ context.Context, target string) ([]migration.Outcome, error) {
	f.targets = append(f.targets, target)
	return nil, nil
}

func (f *facadeStub) Down(context.Context, int) ([]migration.Outcome, error) { return nil, nil }

func (f *facadeStub) Health(context.Context) error { return nil }

var _ handlers.AdminFacade = (*facadeStub)(nil)

func newEngine(t *testing.T) (*gin.Engine, *facadeStub, *metrics.Metrics) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &facadeStub{}
	m := metrics.New("", logger)
	engine := Setup(facade, m, logger)
	gin.SetMode(gin.TestMode)
	return engine, facade, m
}

func TestSetupRoutes(t *testing.T) {
	engine, _, _ := newEngine(t)

	body, _ := json.Marshal(map[string]string{"login": "operator", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/operator/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/migrations", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/migrations", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for status, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for healthz, got %d", resp.Code)
	}
}

func TestSetupServesMetrics(t *testing.T) {
	engine, _, m := newEngine(t)
	m.ObserveMigration(migration.WithdrawalIndexesName, model.DirectionUp, 0, nil)

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for metrics, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "lms_migration_runs_total") {
		t.Fatalf("expected migration counter in exposition")
	}
}

func TestSetupAcceptsGzipBodies(t *testing.T) {
	engine, facade, _ := newEngine(t)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"target":"002_package_types"}`))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/migrations/up", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if len(facade.targets) != 1 || facade.targets[0] != "002_package_types" {
		t.Fatalf("unexpected targets: %q", facade.targets)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoded response")
	}
}
