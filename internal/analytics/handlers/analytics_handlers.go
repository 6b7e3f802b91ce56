package handlers

import (
	"net/http"
	"time"

	"github.com/architect/study-companion/internal/analytics/services"
	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/common/middleware"
	"github.com/gin-gonic/gin"
)

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		middleware.JSONErrorResponse(c, errors.BadRequest("user_id is required"))
		return "", false
	}
	return userID, true
}

// GetAnalytics returns the user's derived statistics snapshot
// GET /api/v1/analytics?user_id=...
func GetAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	analytics, err := services.GetAnalytics(userID, time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// RefreshAnalytics recomputes the snapshot from full history
// POST /api/v1/analytics/refresh?user_id=...
func RefreshAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	analytics, err := services.RefreshAnalytics(userID, time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// FoldSession folds one session into the stored snapshot for live updates
// POST /api/v1/analytics/fold/:session_id
func FoldSession(c *gin.Context) {
	analytics, err := services.FoldSessionByID(c.Param("session_id"), time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
