package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/nmakarova/foodgram/pkg/foodgram/auth"
	"github.com/nmakarova/foodgram/pkg/foodgram/config"
	"github.com/nmakarova/foodgram/pkg/foodgram/database"
	"github.com/nmakarova/foodgram/pkg/foodgram/ingredients"
	"github.com/nmakarova/foodgram/pkg/foodgram/logging"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/recipes"
	"github.com/nmakarova/foodgram/pkg/foodgram/shortlinks"
	"github.com/nmakarova/foodgram/pkg/foodgram/tags"
	"github.com/nmakarova/foodgram/pkg/foodgram/users"

	_ "github.com/nmakarova/foodgram/api/swagger"
)

// @title Foodgram API
// @version 1.0
// @description A recipe-sharing backend with favorites, shopping carts, subscriptions, and short links.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFile)
	auth.Configure(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	if err := database.Connect(cfg.DBPath); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	if err := ensureAdminExists(db); err != nil {
		slog.Error("Failed to ensure admin user exists", "error", err)
		os.Exit(1)
	}

	if err := seedCatalog(db, cfg.SeedDir); err != nil {
		slog.Error("Failed to seed catalog data", "error", err)
		os.Exit(1)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		usersHandler := users.NewHandler(db, cfg)
		usersHandler.RegisterRoutes(api.Group("/users"))

		tagsHandler := tags.NewHandler(db)
		tagsHandler.RegisterRoutes(api.Group("/tags"))

		ingredientsHandler := ingredients.NewHandler(db)
		ingredientsHandler.RegisterRoutes(api.Group("/ingredients"))

		recipesHandler := recipes.NewHandler(db, cfg)
		recipesHandler.RegisterRoutes(api.Group("/recipes"))
	}

	// Uploaded images (avatars, recipe photos)
	r.Static("/media", cfg.MediaDir)

	// Short-link redirects (public, registered LAST to avoid conflicts)
	redirectHandler := shortlinks.NewHandler(db, cfg.BaseURL)
	redirectHandler.RegisterRoutes(r)

	slog.Info("Starting Foodgram server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// ensureAdminExists creates a default admin user when the user table is
// empty, so a fresh install is immediately usable.
func ensureAdminExists(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Username:     "admin",
		Email:        "admin@foodgram.local",
		FirstName:    "Admin",
		LastName:     "Admin",
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	slog.Info("Created default admin user", "email", adminUser.Email, "password", "changeme")
	return nil
}

type ingredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagSeed struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// seedCatalog loads ingredients.json and tags.json from seedDir when
// configured. Existing rows are kept, so re-running is safe.
func seedCatalog(db *gorm.DB, seedDir string) error {
	if seedDir == "" {
		return nil
	}

	var ingredientSeeds []ingredientSeed
	if err := readSeedFile(filepath.Join(seedDir, "ingredients.json"), &ingredientSeeds); err != nil {
		return err
	}
	for _, s := range ingredientSeeds {
		row := models.Ingredient{Name: s.Name, MeasurementUnit: s.MeasurementUnit}
		if err := db.Where("name = ? AND measurement_unit = ?", s.Name, s.MeasurementUnit).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}

	var tagSeeds []tagSeed
	if err := readSeedFile(filepath.Join(seedDir, "tags.json"), &tagSeeds); err != nil {
		return err
	}
	for _, s := range tagSeeds {
		row := models.Tag{Name: s.Name, Slug: s.Slug}
		if err := db.Where("slug = ?", s.Slug).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}

	slog.Info("Catalog seeding completed", "ingredients", len(ingredientSeeds), "tags", len(tagSeeds))
	return nil
}

// readSeedFile unmarshals a JSON fixture; a missing file is not an error
func readSeedFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}
