package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	db.Exec("PRAGMA foreign_keys = ON")
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username:     "testuser",
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "password123" {
		t.Error("Hash should not equal the plaintext password")
	}
	if !CheckPassword("password123", hash) {
		t.Error("Expected the correct password to verify")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("Expected a wrong password to fail verification")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "user@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Expected email user@example.com, got %s", claims.Email)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "test@example.com", "password123")

	body, _ := json.Marshal(LoginRequest{Email: "test@example.com", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/token/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response TokenResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.AuthToken == "" {
		t.Fatal("Expected a token in the response")
	}

	claims, err := ValidateToken(response.AuthToken)
	if err != nil {
		t.Fatalf("Issued token should validate: %v", err)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Expected claims for test@example.com, got %s", claims.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "test@example.com", "password123")

	body, _ := json.Marshal(LoginRequest{Email: "test@example.com", Password: "wrong-password"})
	req, _ := http.NewRequest("POST", "/api/auth/token/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body, _ := json.Marshal(LoginRequest{Email: "nobody@example.com", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/token/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLogoutRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("POST", "/api/auth/token/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without a token, got %d", resp.Code)
	}
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com", "password123")

	token, _ := GenerateToken(user.ID, user.Email)
	req, _ := http.NewRequest("POST", "/api/auth/token/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", resp.Code)
	}
}

func TestOptionalAuthMiddlewareNeverRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/public", OptionalAuthMiddleware(), func(c *gin.Context) {
		_, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	// No token: request passes, no identity set.
	req, _ := http.NewRequest("GET", "/public", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200 without a token, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"authenticated":false`)) {
		t.Errorf("Expected anonymous request, got %s", resp.Body.String())
	}

	// Valid token: identity set.
	token, _ := GenerateToken(7, "user@example.com")
	req, _ = http.NewRequest("GET", "/public", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"authenticated":true`)) {
		t.Errorf("Expected authenticated request, got %s", resp.Body.String())
	}
}
