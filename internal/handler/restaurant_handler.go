package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unibites/campus-bites/internal/middleware"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/service"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
)

type RestaurantHandler struct {
	restaurantService *service.RestaurantService
}

func NewRestaurantHandler(restaurantService *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

type CreateRestaurantRequest struct {
	Name          string                `json:"name" binding:"required"`
	Type          models.RestaurantType `json:"type" binding:"required"`
	University    string                `json:"university" binding:"required"`
	Address       string                `json:"address"`
	GoogleMapLink string                `json:"google_map_link"`
	Latitude      *float64              `json:"latitude"`
	Longitude     *float64              `json:"longitude"`
	ContactNumber string                `json:"contact_number"`
}

type UpdateRestaurantRequest struct {
	Name          *string                `json:"name"`
	Type          *models.RestaurantType `json:"type"`
	University    *string                `json:"university"`
	Address       *string                `json:"address"`
	GoogleMapLink *string                `json:"google_map_link"`
	Latitude      *float64               `json:"latitude"`
	Longitude     *float64               `json:"longitude"`
	ContactNumber *string                `json:"contact_number"`
}

// List returns restaurants matching the query filters. Anonymous and
// non-admin callers only ever see approved rows, whatever they filter
// by; admins additionally control the approved filter themselves.
// GET /api/restaurants  [public, optional auth]
func (h *RestaurantHandler) List(c *gin.Context) {
	filters := repository.RestaurantFilters{
		University: c.Query("university"),
		Type:       models.RestaurantType(c.Query("type")),
		Name:       c.Query("name"),
		Search:     c.Query("search"),
	}
	if approvedStr := c.Query("approved"); approvedStr != "" {
		if approved, err := strconv.ParseBool(approvedStr); err == nil {
			filters.Approved = &approved
		}
	}

	restaurants, err := h.restaurantService.List(filters, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// TopRated returns the best approved restaurants.
// GET /api/restaurants/top-rated?limit=10
func (h *RestaurantHandler) TopRated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	restaurants, err := h.restaurantService.TopRated(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// Search finds approved restaurants by free text.
// GET /api/restaurants/search?query=...
func (h *RestaurantHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondBadRequest(c, "query parameter is required")
		return
	}

	restaurants, err := h.restaurantService.Search(query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// ByUniversity lists approved restaurants of one university.
// GET /api/restaurants/university/:university
func (h *RestaurantHandler) ByUniversity(c *gin.Context) {
	restaurants, err := h.restaurantService.ByUniversity(c.Param("university"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// Get returns one restaurant.
// GET /api/restaurants/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.restaurantService.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Create adds a new, unapproved restaurant owned by the caller.
// POST /api/restaurants  [auth]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	restaurant, err := h.restaurantService.Create(service.CreateRestaurantInput{
		Name:          req.Name,
		Type:          req.Type,
		University:    req.University,
		Address:       req.Address,
		GoogleMapLink: req.GoogleMapLink,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ContactNumber: req.ContactNumber,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Log.Info("Restaurant submitted",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("user_id", middleware.UserID(c)),
	)

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

// Update patches a restaurant.
// PATCH /api/restaurants/:id  [owner-or-admin]
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	restaurant, err := h.restaurantService.Update(c.Param("id"), service.UpdateRestaurantInput{
		Name:          req.Name,
		Type:          req.Type,
		University:    req.University,
		Address:       req.Address,
		GoogleMapLink: req.GoogleMapLink,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ContactNumber: req.ContactNumber,
	}, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Delete removes a restaurant and its reviews.
// DELETE /api/restaurants/:id  [owner-or-admin]
func (h *RestaurantHandler) Delete(c *gin.Context) {
	err := h.restaurantService.Delete(c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

// Approve makes a restaurant publicly visible.
// PATCH /api/restaurants/:id/approve  [admin]
func (h *RestaurantHandler) Approve(c *gin.Context) {
	restaurant, err := h.restaurantService.SetApproved(c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Unapprove hides a restaurant from public listings.
// PATCH /api/restaurants/:id/unapprove  [admin]
func (h *RestaurantHandler) Unapprove(c *gin.Context) {
	restaurant, err := h.restaurantService.SetApproved(c.Param("id"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}
