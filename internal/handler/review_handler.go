package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unibites/campus-bites/internal/middleware"
	"github.com/unibites/campus-bites/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	Rating            int    `json:"rating" binding:"required"`
	Comment           string `json:"comment"`
	FoodQualityRating *int   `json:"food_quality_rating"`
	ServiceRating     *int   `json:"service_rating"`
	ValueRating       *int   `json:"value_rating"`
	PriceRange        string `json:"price_range"`
}

type UpdateReviewRequest struct {
	Rating            *int    `json:"rating"`
	Comment           *string `json:"comment"`
	FoodQualityRating *int    `json:"food_quality_rating"`
	ServiceRating     *int    `json:"service_rating"`
	ValueRating       *int    `json:"value_rating"`
	PriceRange        *string `json:"price_range"`
}

// Create adds the caller's review for a restaurant.
// POST /api/reviews/restaurant/:restaurantId  [auth]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Create(c.Param("restaurantId"), service.CreateReviewInput{
		Rating:            req.Rating,
		Comment:           req.Comment,
		FoodQualityRating: req.FoodQualityRating,
		ServiceRating:     req.ServiceRating,
		ValueRating:       req.ValueRating,
		PriceRange:        req.PriceRange,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ByRestaurant lists a restaurant's reviews; non-admins only see
// approved ones.
// GET /api/reviews/restaurant/:restaurantId  [public, optional auth]
func (h *ReviewHandler) ByRestaurant(c *gin.Context) {
	reviews, err := h.reviewService.FindByRestaurant(c.Param("restaurantId"), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Stats aggregates a restaurant's approved reviews.
// GET /api/reviews/restaurant/:restaurantId/stats
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.reviewService.Stats(c.Param("restaurantId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// MyReview returns the caller's review for a restaurant, or null when
// they have not written one yet.
// GET /api/reviews/restaurant/:restaurantId/my-review  [auth]
func (h *ReviewHandler) MyReview(c *gin.Context) {
	review, err := h.reviewService.GetUserReview(c.Param("restaurantId"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// MyReviews lists everything the caller has reviewed.
// GET /api/reviews/my-reviews  [auth]
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	reviews, err := h.reviewService.FindByUser(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Top returns the highest-rated, most-helpful approved reviews.
// GET /api/reviews/top?limit=10
func (h *ReviewHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reviews, err := h.reviewService.TopReviews(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Unapproved lists reviews awaiting moderation.
// GET /api/reviews/unapproved  [admin]
func (h *ReviewHandler) Unapproved(c *gin.Context) {
	reviews, err := h.reviewService.Unapproved()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Get returns one review.
// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviewService.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// Update patches the caller's own review.
// PATCH /api/reviews/:id  [auth, author only]
func (h *ReviewHandler) Update(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Update(c.Param("id"), service.UpdateReviewInput{
		Rating:            req.Rating,
		Comment:           req.Comment,
		FoodQualityRating: req.FoodQualityRating,
		ServiceRating:     req.ServiceRating,
		ValueRating:       req.ValueRating,
		PriceRange:        req.PriceRange,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// Delete removes a review.
// DELETE /api/reviews/:id  [auth, author or admin]
func (h *ReviewHandler) Delete(c *gin.Context) {
	err := h.reviewService.Remove(c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Approve makes a review count towards the aggregate again.
// PATCH /api/reviews/:id/approve  [admin]
func (h *ReviewHandler) Approve(c *gin.Context) {
	review, err := h.reviewService.SetApproved(c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// Unapprove pulls a review out of public view and the aggregate.
// PATCH /api/reviews/:id/unapprove  [admin]
func (h *ReviewHandler) Unapprove(c *gin.Context) {
	review, err := h.reviewService.SetApproved(c.Param("id"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// MarkHelpful bumps the helpful counter.
// PATCH /api/reviews/:id/helpful  [auth]
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	review, err := h.reviewService.MarkHelpful(c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}
