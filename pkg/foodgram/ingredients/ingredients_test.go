package ingredients

import (
	"encoding/json"
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
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api/ingredients"))
	return r
}

func TestListIngredients(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "g"})
	db.Create(&models.Ingredient{Name: "pepper", MeasurementUnit: "g"})

	req, _ := http.NewRequest("GET", "/api/ingredients", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var items []models.Ingredient
	json.Unmarshal(resp.Body.Bytes(), &items)
	if len(items) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(items))
	}
	if items[0].Name != "pepper" {
		t.Errorf("Expected ingredients ordered by name, got %s first", items[0].Name)
	}
}

func TestListIngredientsNamePrefix(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "g"})
	db.Create(&models.Ingredient{Name: "salmon", MeasurementUnit: "g"})
	db.Create(&models.Ingredient{Name: "pepper", MeasurementUnit: "g"})

	req, _ := http.NewRequest("GET", "/api/ingredients?name=sal", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var items []models.Ingredient
	json.Unmarshal(resp.Body.Bytes(), &items)
	if len(items) != 2 {
		t.Fatalf("Expected 2 matches for prefix sal, got %d", len(items))
	}
	for _, item := range items {
		if item.Name != "salt" && item.Name != "salmon" {
			t.Errorf("Unexpected match %s for prefix sal", item.Name)
		}
	}
}

func TestGetIngredient(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	ingredient := models.Ingredient{Name: "salt", MeasurementUnit: "g"}
	db.Create(&ingredient)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/ingredients/%d", ingredient.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var got models.Ingredient
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.MeasurementUnit != "g" {
		t.Errorf("Expected unit g, got %s", got.MeasurementUnit)
	}
}

func TestGetIngredientNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/ingredients/9999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
