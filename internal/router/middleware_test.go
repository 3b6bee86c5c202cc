package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const middlewareTestSecret = "middleware-test-secret-0123456789ab"

func setupMiddlewareTest(t *testing.T) (*gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:middleware_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.User{}, &models.Influencer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: middlewareTestSecret, ExpireHours: 1},
	}
	authService := service.NewAuthService(cfg,
		repository.NewUserRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewInfluencerRepository(db),
		nil,
	)
	return db, authService
}

func newAuthTestRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/api/v1/users/me",
		JWTAuthMiddleware(middlewareTestSecret, repository.NewUserRepository(db)),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": c.GetUint("user_id"),
				"role":    c.GetString("role"),
			})
		})
	return r
}

func TestJWTAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	db, authService := setupMiddlewareTest(t)

	user := models.User{Username: "mw-user", PasswordHash: "hash", Role: constants.RoleInfluencer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	token, _, err := authService.GenerateJWT(&user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := newAuthTestRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["user_id"] != float64(user.ID) || body["role"] != constants.RoleInfluencer {
		t.Fatalf("unexpected identity: %v", body)
	}
}

func TestJWTAuthMiddlewareRejectsResetToken(t *testing.T) {
	db, authService := setupMiddlewareTest(t)

	user := models.User{Username: "mw-reset", PasswordHash: "hash", Role: constants.RoleInfluencer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	resetToken, err := authService.GeneratePasswordResetToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generate reset token failed: %v", err)
	}

	r := newAuthTestRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+resetToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("reset token must not authenticate, got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	db, _ := setupMiddlewareTest(t)
	r := newAuthTestRouter(db)

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer not-a-jwt"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestJWTAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	db, authService := setupMiddlewareTest(t)

	user := models.User{Username: "mw-gone", PasswordHash: "hash", Role: constants.RoleCompany}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	token, _, err := authService.GenerateJWT(&user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if err := db.Delete(&user).Error; err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	r := newAuthTestRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token for removed account must fail, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, getRequestID(c))
	})

	// 自动生成
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	generated := w.Header().Get(requestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Fatalf("expected generated request id echoed, header=%q body=%q", generated, w.Body.String())
	}

	// 透传入站值
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(requestIDHeader, "inbound-42")
	r.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) != "inbound-42" || w.Body.String() != "inbound-42" {
		t.Fatalf("expected inbound request id preserved, got header=%q body=%q",
			w.Header().Get(requestIDHeader), w.Body.String())
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if w.Code != 204 {
		t.Fatalf("expected preflight 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials allowed")
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("unexpected max-age: %q", w.Header().Get("Access-Control-Max-Age"))
	}

	// 未放行的来源不回写 allow-origin
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow-origin for unknown origin: %q",
			w.Header().Get("Access-Control-Allow-Origin"))
	}
}
