package shortlinks

import (
	"errors"
	"fmt"
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

func createTestRecipe(t *testing.T, db *gorm.DB, name string) models.Recipe {
	user := models.User{Username: name, Email: name + "@example.com", FirstName: "T", LastName: "U", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	recipe := models.Recipe{AuthorID: user.ID, Name: name, Text: "Steps", CookingTime: 10}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}
	return recipe
}

func TestEnsureCode(t *testing.T) {
	db := setupTestDB(t)
	recipe := createTestRecipe(t, db, "soup")

	code, err := EnsureCode(db, recipe.ID, "abcdef", 6)
	if err != nil {
		t.Fatalf("EnsureCode failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("Expected a 6-char code, got %q", code)
	}

	// Further calls reuse the stored code.
	again, err := EnsureCode(db, recipe.ID, "abcdef", 6)
	if err != nil {
		t.Fatalf("EnsureCode failed on reuse: %v", err)
	}
	if again != code {
		t.Errorf("Expected the same code on reuse, got %q then %q", code, again)
	}

	var count int64
	db.Model(&models.ShortLink{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 short link row, got %d", count)
	}
}

func TestEnsureCodeSpaceExhausted(t *testing.T) {
	db := setupTestDB(t)
	first := createTestRecipe(t, db, "soup")
	second := createTestRecipe(t, db, "salad")

	// A one-letter alphabet of length one admits exactly one code.
	code, err := EnsureCode(db, first.ID, "a", 1)
	if err != nil {
		t.Fatalf("EnsureCode failed: %v", err)
	}
	if code != "a" {
		t.Fatalf("Expected code a, got %q", code)
	}

	_, err = EnsureCode(db, second.ID, "a", 1)
	if !errors.Is(err, ErrCodeSpaceExhausted) {
		t.Errorf("Expected ErrCodeSpaceExhausted, got %v", err)
	}
}

func TestRedirect(t *testing.T) {
	db := setupTestDB(t)
	recipe := createTestRecipe(t, db, "soup")

	if err := db.Create(&models.ShortLink{RecipeID: recipe.ID, Code: "abc123"}).Error; err != nil {
		t.Fatalf("Failed to create short link: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(db, "http://localhost:8080").RegisterRoutes(r)

	req, _ := http.NewRequest("GET", "/s/abc123", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}
	want := fmt.Sprintf("http://localhost:8080/recipes/%d", recipe.ID)
	if location := resp.Header().Get("Location"); location != want {
		t.Errorf("Expected redirect to %q, got %q", want, location)
	}
}

func TestRedirectUnknownCode(t *testing.T) {
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(db, "http://localhost:8080").RegisterRoutes(r)

	req, _ := http.NewRequest("GET", "/s/nothing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
