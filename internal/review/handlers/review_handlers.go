package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/common/middleware"
	"github.com/architect/study-companion/internal/review/models"
	"github.com/architect/study-companion/internal/review/repository"
	"github.com/architect/study-companion/internal/review/services"
	"github.com/gin-gonic/gin"
)

// ApplyGrade applies a review grade to an item and returns the new state
// POST /api/v1/review/grade
func ApplyGrade(c *gin.Context) {
	var req models.ApplyGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	state, err := services.GradeCard(req.UserID, req.CardID, models.Grade(req.Grade), time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetDueCards lists the caller's items due for review
// GET /api/v1/review/due?user_id=...&limit=...
func GetDueCards(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		middleware.JSONErrorResponse(c, errors.BadRequest("user_id is required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	now := time.Now().UTC()
	states, err := services.GetDueCards(userID, now, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	total, err := repository.CountDueStates(userID, now)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"due": states, "count": len(states), "total": total})
}
