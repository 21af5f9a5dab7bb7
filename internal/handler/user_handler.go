package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unibites/campus-bites/internal/middleware"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/service"
	"github.com/unibites/campus-bites/internal/storage"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
)

const maxPictureBytes = 5 * 1024 * 1024 // 5MB

var allowedPictureExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type UserHandler struct {
	userService  *service.UserService
	pictureStore storage.PictureStore
}

func NewUserHandler(userService *service.UserService, pictureStore storage.PictureStore) *UserHandler {
	return &UserHandler{
		userService:  userService,
		pictureStore: pictureStore,
	}
}

type CreateAdminRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	University string `json:"university"`
}

// UpdateUserRequest has no role field on purpose; role changes go
// through the admin-only role endpoint.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	University *string `json:"university"`
	Password   *string `json:"password"`
}

type ChangeRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// requireSelfOrAdmin returns false and writes a 403 when the caller is
// neither the target user nor an admin.
func requireSelfOrAdmin(c *gin.Context, targetID string) bool {
	if middleware.IsAdmin(c) || middleware.UserID(c) == targetID {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	return false
}

// List returns all users.
// GET /api/users  [admin]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get returns one user.
// GET /api/users/:id  [self-or-admin]
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateAdmin provisions an admin account.
// POST /api/users/admin  [admin]
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateAdmin(req.Name, req.Email, req.Password, req.University)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Update patches a user's profile.
// PATCH /api/users/:id  [self-or-admin]
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, service.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		University: req.University,
		Password:   req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangeRole switches a user between user and admin.
// PATCH /api/users/:id/role  [admin]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.ChangeRole(c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Activate re-enables an account.
// PATCH /api/users/:id/activate  [admin]
func (h *UserHandler) Activate(c *gin.Context) {
	user, err := h.userService.SetActive(c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Deactivate disables an account. The user's restaurants and reviews
// stay untouched.
// PATCH /api/users/:id/deactivate  [admin]
func (h *UserHandler) Deactivate(c *gin.Context) {
	user, err := h.userService.SetActive(c.Param("id"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Verify marks the account's email as verified.
// PATCH /api/users/:id/verify  [admin]
func (h *UserHandler) Verify(c *gin.Context) {
	user, err := h.userService.Verify(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete removes an account permanently.
// DELETE /api/users/:id  [admin]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// UploadPicture stores a profile picture in the blob store and saves
// its path on the user. jpg/jpeg/png only, 5MB cap; both are checked
// before anything touches storage.
// POST /api/users/:id/picture  [self-or-admin]
func (h *UserHandler) UploadPicture(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		respondBadRequest(c, "No file uploaded")
		return
	}

	if fileHeader.Size > maxPictureBytes {
		respondBadRequest(c, "File too large (max 5MB)")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedPictureExts[ext]
	if !ok {
		respondBadRequest(c, "Only image files are allowed (jpg, jpeg, png)")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("profile-pictures/%s%s", uuid.NewString(), ext)
	if err := h.pictureStore.Put(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		logger.Log.Error("Profile picture upload failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	user, err := h.userService.SetProfilePicture(id, "/uploads/"+key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
