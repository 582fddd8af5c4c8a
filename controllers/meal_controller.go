package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fredneedsausername/FreDiet/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
	Loc   *time.Location
	Now   func() time.Time
}

func NewMealController(meals *services.MealService, loc *time.Location) *MealController {
	return &MealController{Meals: meals, Loc: loc, Now: time.Now}
}

type AddMealInput struct {
	Proteins   *float64   `json:"proteins" binding:"required"`
	Calories   *float64   `json:"calories" binding:"required"`
	OccurredAt *time.Time `json:"occurred_at"` // RFC 3339; omitted = now
}

func (h *MealController) AddMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
		return
	}

	var input AddMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	rec, err := h.Meals.AddRecord(c.Request.Context(), userID, *input.Proteins, *input.Calories, input.OccurredAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *MealController) ListMeals(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
		return
	}

	from, to, ok := parseDateRange(c, h.Loc, h.Now)
	if !ok {
		return
	}

	records, err := h.Meals.ListRecords(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *MealController) DeleteMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid record id"})
		return
	}

	if err := h.Meals.DeleteRecord(c.Request.Context(), userID, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
