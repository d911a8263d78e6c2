package routes

import (
	"barquea-server/storage"
	"barquea-server/utils"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp creates a minimal Iris app with the admin routes and JWT verifier
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", AdminListUsers)
		admin.Post("/users/reject-host", RejectHost)
		admin.Post("/messages/broadcast", AdminBroadcast)
		admin.Get("/messages/broadcast/list", AdminListBroadcasts)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

// brokenDB opens a connection pool against a closed port, so the first query
// fails instead of reaching a server.
func brokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1",
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open broken db: %v", err)
	}
	return db
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestRejectHostRBAC(t *testing.T) {
	app := buildTestApp()

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/reject-host", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// User role -> 403
	req2 := httptest.NewRequest(http.MethodPost, "/api/admin/users/reject-host", strings.NewReader(`{}`))
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user"))
	req2.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}
}

func TestRejectHostRequiresReason(t *testing.T) {
	app := buildTestApp()

	// An empty reason must be refused before any database access
	body := `{"userId": 1, "reason": "   "}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/reject-host", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty reason, got %d", resp.Code)
	}
}

func TestAdminListingsReportStorageFailure(t *testing.T) {
	prev := storage.DB
	storage.DB = brokenDB(t)
	defer func() { storage.DB = prev }()

	app := buildTestApp()
	for _, path := range []string{"/api/admin/users", "/api/admin/messages/broadcast/list"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500 when storage is unreachable, got %d", path, resp.Code)
		}
	}
}

func TestBroadcastRejectsUnknownAudience(t *testing.T) {
	app := buildTestApp()

	body := `{"audience": "everyone", "text": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/messages/broadcast", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown audience, got %d", resp.Code)
	}
}
