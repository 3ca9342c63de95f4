package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staybnb/internal/domain"
	"staybnb/internal/middleware"
	"staybnb/internal/pkg/jwt"
	"staybnb/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	jwt    *jwt.Service
	users  *repository.UserRepository
}

func setupListingTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:listing_%s?mode=memory&cache=shared&_foreign_keys=on", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open sqlite db")
	require.NoError(t, repository.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svc := NewService(repository.NewListingRepository(db), repository.NewReviewRepository(db))
	h := NewHandler(svc)
	j := jwt.New("listing-test-secret", time.Hour)

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(j))
	h.RegisterProtectedRoutes(protected)

	return &testEnv{router: r, jwt: j, users: repository.NewUserRepository(db)}
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, e.users.Create(context.Background(), u))
	token, err := e.jwt.GenerateToken(u.ID, u.Username, string(u.Role()))
	require.NoError(t, err)
	return token
}

func doJSONRequest(t *testing.T, r http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	}
	return w.Code, out
}

func cabinBody() map[string]any {
	return map[string]any{
		"title":           "Mountain Cabin Retreat",
		"description":     "Peaceful cabin surrounded by nature.",
		"property_type":   "cabin",
		"price_per_night": 95.00,
		"max_guests":      6,
		"num_bedrooms":    3,
		"num_beds":        4,
		"num_bathrooms":   2,
		"address":         "789 Forest Road",
		"city":            "Aspen",
		"state":           "Colorado",
		"country":         "USA",
		"latitude":        "39.191100",
		"longitude":       -106.8175,
		"amenities":       []string{"wifi", "fireplace", "kitchen"},
	}
}

func TestHandler_CreateAndGetListing(t *testing.T) {
	env := setupListingTest(t)
	token := env.login(t, "host1")

	code, body := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", token, cabinBody())
	require.Equal(t, http.StatusCreated, code, "body=%v", body)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "95.00", data["price_per_night"])
	assert.Equal(t, "39.191100", data["latitude"])
	assert.Equal(t, "-106.817500", data["longitude"])
	assert.Nil(t, data["average_rating"])
	assert.Equal(t, float64(0), data["review_count"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, []any{"wifi", "fireplace", "kitchen"}, data["amenities"])
	host := data["host"].(map[string]any)
	assert.Equal(t, "host1", host["username"])
	assert.NotContains(t, host, "password_hash")

	id := int64(data["id"].(float64))
	code, body = doJSONRequest(t, env.router, http.MethodGet, fmt.Sprintf("/api/v1/listings/%d", id), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Mountain Cabin Retreat", body["data"].(map[string]any)["title"])

	code, body = doJSONRequest(t, env.router, http.MethodGet, "/api/v1/listings", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
}

func TestHandler_CreateListing_IgnoresClientHost(t *testing.T) {
	env := setupListingTest(t)
	token := env.login(t, "host1")
	env.login(t, "host2")

	req := cabinBody()
	req["host"] = 2
	req["host_id"] = 2
	code, body := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", token, req)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "host1", body["data"].(map[string]any)["host"].(map[string]any)["username"])
}

func TestHandler_CreateListing_ValidationDetails(t *testing.T) {
	env := setupListingTest(t)
	token := env.login(t, "host1")

	req := cabinBody()
	req["price_per_night"] = "9.99"
	req["num_beds"] = 0
	code, body := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", token, req)

	require.Equal(t, http.StatusBadRequest, code)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "price_per_night")
	assert.Contains(t, details, "num_beds")
}

func TestHandler_CreateListing_NonNumericPrice(t *testing.T) {
	env := setupListingTest(t)
	token := env.login(t, "host1")

	req := cabinBody()
	req["price_per_night"] = "cheap"
	code, body := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", token, req)

	require.Equal(t, http.StatusBadRequest, code)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "A valid number is required.", details["price_per_night"])
}

func TestHandler_CreateListing_RequiresAuth(t *testing.T) {
	env := setupListingTest(t)

	code, _ := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", "", cabinBody())
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHandler_UpdateAndDeleteListing_HostOnly(t *testing.T) {
	env := setupListingTest(t)
	hostToken := env.login(t, "host1")
	otherToken := env.login(t, "guest1")

	_, body := doJSONRequest(t, env.router, http.MethodPost, "/api/v1/listings", hostToken, cabinBody())
	path := fmt.Sprintf("/api/v1/listings/%d", int64(body["data"].(map[string]any)["id"].(float64)))

	code, _ := doJSONRequest(t, env.router, http.MethodPatch, path, otherToken, map[string]any{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = doJSONRequest(t, env.router, http.MethodPatch, path, hostToken, map[string]any{"is_active": false, "price_per_night": "120.5"})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["is_active"])
	assert.Equal(t, "120.50", data["price_per_night"])

	code, body = doJSONRequest(t, env.router, http.MethodGet, "/api/v1/listings", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 0)

	code, body = doJSONRequest(t, env.router, http.MethodGet, "/api/v1/users/me/listings", hostToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = doJSONRequest(t, env.router, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doJSONRequest(t, env.router, http.MethodDelete, path, hostToken, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = doJSONRequest(t, env.router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandler_GetListing_InvalidID(t *testing.T) {
	env := setupListingTest(t)

	code, body := doJSONRequest(t, env.router, http.MethodGet, "/api/v1/listings/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ID", body["error"].(map[string]any)["code"])
}
