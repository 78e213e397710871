package users

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/auth"
	"github.com/nmakarova/foodgram/pkg/foodgram/config"
	"github.com/nmakarova/foodgram/pkg/foodgram/images"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/pagination"
	"gorm.io/gorm"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// Handler handles user-related requests
type Handler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

// RegisteredResponse is the shape returned right after signup
type RegisteredResponse struct {
	Email     string `json:"email"`
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResponse represents a user profile in API responses
type UserResponse struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

// NewUserResponse builds the profile shape, resolving is_subscribed for the
// viewing user (always false for anonymous viewers).
func NewUserResponse(db *gorm.DB, u models.User, viewerID uint) UserResponse {
	isSubscribed := false
	if viewerID != 0 && viewerID != u.ID {
		var count int64
		db.Model(&models.Subscription{}).
			Where("follower_id = ? AND author_id = ?", viewerID, u.ID).
			Count(&count)
		isSubscribed = count > 0
	}

	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       images.URL(u.Avatar),
	}
}

// Register handles user signup
// @Summary Register a new user
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} RegisteredResponse
// @Failure 400 {object} map[string][]string "Validation error"
// @Router /users/ [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	fieldErrors := map[string][]string{}
	if !usernameRegex.MatchString(req.Username) {
		fieldErrors["username"] = append(fieldErrors["username"], "Username contains invalid characters")
	}
	if req.Username == "me" {
		fieldErrors["username"] = append(fieldErrors["username"], "Username \"me\" is reserved")
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		fieldErrors["email"] = append(fieldErrors["email"], "A user with this email already exists")
	}
	h.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		fieldErrors["username"] = append(fieldErrors["username"], "A user with this username already exists")
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to process password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Registration races on the unique columns land here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with this email or username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, RegisteredResponse{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// List returns all users, paginated
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page
// @Router /users/ [get]
func (h *Handler) List(c *gin.Context) {
	viewerID, _ := auth.GetUserID(c)
	params := pagination.Parse(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch users"})
		return
	}

	var users []models.User
	if err := h.db.Order("username").Limit(params.Limit).Offset(params.Offset()).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch users"})
		return
	}

	results := make([]UserResponse, len(users))
	for i, u := range users {
		results[i] = NewUserResponse(h.db, u, viewerID)
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, params, total, results))
}

// Get returns a single user profile
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id}/ [get]
func (h *Handler) Get(c *gin.Context) {
	viewerID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(h.db, user, viewerID))
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /users/me/ [get]
func (h *Handler) Me(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(h.db, user, userID))
}

// UpdateMeRequest represents the profile update body
type UpdateMeRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`
}

// UpdateMe updates the authenticated user's display names
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateMeRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Security BearerAuth
// @Router /users/me/ [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(h.db, user, userID))
}

// AvatarRequest carries a base64 data-URI image
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// PutAvatar replaces the authenticated user's avatar
// @Summary Set avatar
// @Tags users
// @Accept json
// @Produce json
// @Param request body AvatarRequest true "Base64 image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid image"
// @Security BearerAuth
// @Router /users/me/avatar/ [put]
func (h *Handler) PutAvatar(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	path, err := images.SaveBase64(h.cfg.MediaDir, "users", req.Avatar)
	if err != nil {
		if errors.Is(err, images.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"avatar": "Invalid base64 image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store avatar"})
		return
	}

	old := user.Avatar
	user.Avatar = path
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update avatar"})
		return
	}
	images.Remove(h.cfg.MediaDir, old)

	c.JSON(http.StatusOK, gin.H{"avatar": images.URL(user.Avatar)})
}

// DeleteAvatar removes the authenticated user's avatar
// @Summary Delete avatar
// @Tags users
// @Success 204 "No content"
// @Security BearerAuth
// @Router /users/me/avatar/ [delete]
func (h *Handler) DeleteAvatar(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	old := user.Avatar
	user.Avatar = ""
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to remove avatar"})
		return
	}
	images.Remove(h.cfg.MediaDir, old)

	c.Status(http.StatusNoContent)
}

// SetPasswordRequest represents the password change body
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// SetPassword changes the authenticated user's password
// @Summary Change password
// @Tags users
// @Accept json
// @Param request body SetPasswordRequest true "Current and new password"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Wrong current password"
// @Security BearerAuth
// @Router /users/set_password/ [post]
func (h *Handler) SetPassword(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"current_password": "Wrong password"})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to process password"})
		return
	}

	user.PasswordHash = hashed
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update password"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers user routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Register)
	rg.GET("", auth.OptionalAuthMiddleware(), h.List)

	rg.GET("/me", auth.AuthMiddleware(), h.Me)
	rg.PATCH("/me", auth.AuthMiddleware(), h.UpdateMe)
	rg.PUT("/me/avatar", auth.AuthMiddleware(), h.PutAvatar)
	rg.DELETE("/me/avatar", auth.AuthMiddleware(), h.DeleteAvatar)
	rg.POST("/set_password", auth.AuthMiddleware(), h.SetPassword)

	rg.GET("/subscriptions", auth.AuthMiddleware(), h.Subscriptions)
	rg.GET("/:id", auth.OptionalAuthMiddleware(), h.Get)
	rg.POST("/:id/subscribe", auth.AuthMiddleware(), h.Subscribe)
	rg.DELETE("/:id/subscribe", auth.AuthMiddleware(), h.Unsubscribe)
}
