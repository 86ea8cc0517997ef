package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashira/internal/config"
	"cashira/internal/handlers"
	"cashira/internal/identity"
	"cashira/internal/logger"
	"cashira/internal/middleware"
	"cashira/internal/models"
	"cashira/internal/services"
	"cashira/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Geo    *fakeGeoLookup
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		Env:            "test",
		SessionSecret:  "integration-test-secret",
		SessionTTL:     time.Hour,
		CookieSameSite: "lax",
	})
}

// fakeVerifier accepts tokens of the form "sub|email|name" and rejects
// everything else, standing in for the Google token check.
type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(_ context.Context, token string) (*identity.Identity, error) {
	parts := strings.SplitN(token, "|", 3)
	if len(parts) != 3 || parts[0] == "" {
		return nil, fmt.Errorf("unrecognized token")
	}
	return &identity.Identity{Subject: parts[0], Email: parts[1], Name: parts[2]}, nil
}

var _ identity.Verifier = fakeVerifier{}

// fakeGeoLookup returns a configurable country code.
type fakeGeoLookup struct {
	country string
	err     error
}

func (f *fakeGeoLookup) CountryCode(_ context.Context) (string, error) {
	return f.country, f.err
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	geo := &fakeGeoLookup{country: "US"}

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	statsService := services.NewStatsService(transactionService)

	// Handlers
	authHandler := handlers.NewAuthHandler(fakeVerifier{}, userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, statsService)
	statsHandler := handlers.NewStatsHandler(statsService)
	preferenceHandler := handlers.NewPreferenceHandler(userService, geo)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signout", authHandler.Signout)
	auth.GET("/me", authHandler.Me)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth())

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/grouped", transactionHandler.ListGrouped)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	statsGroup := protected.Group("/stats")
	statsGroup.GET("/totals", statsHandler.Totals)
	statsGroup.GET("/chart", statsHandler.Chart)
	statsGroup.GET("/categories", statsHandler.Categories)
	statsGroup.GET("/summary", statsHandler.Summary)

	preferences := protected.Group("/preferences")
	preferences.GET("", preferenceHandler.Get)
	preferences.PUT("", preferenceHandler.Update)

	return &testApp{DB: db, Router: router, Geo: geo}
}

// request makes an HTTP request to the test router, attaching the
// session cookie when one is given.
func (app *testApp) request(method, path, body, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// sessionCookie extracts the session cookie value from a response.
func sessionCookie(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

// signinUser signs in via the fake verifier and returns the session
// cookie value and user ID.
func (app *testApp) signinUser(t *testing.T, subject, email string) (session, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"id_token":%q}`, subject+"|"+email+"|Test User")
	rec := app.request("POST", "/api/v1/auth/signin", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signin failed: %d %s", rec.Code, rec.Body.String())
	}
	session = sessionCookie(rec)
	if session == "" {
		t.Fatal("expected session cookie from signin")
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return session, user["id"].(string)
}

// createTransaction creates a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, session, kind, category string, amount string) string {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%s,"kind":%q,"category":%q}`, amount, kind, category)
	rec := app.request("POST", "/api/v1/transactions", body, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
