package handlers

import (
	"net/http"
	"time"

	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/common/middleware"
	"github.com/architect/study-companion/internal/study/models"
	"github.com/architect/study-companion/internal/study/services"
	"github.com/gin-gonic/gin"
)

// StartSession opens a new study session
// POST /api/v1/study/sessions
func StartSession(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	session, err := services.StartSession(&req, time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// EndSession closes an in-progress session
// POST /api/v1/study/sessions/:id/end
func EndSession(c *gin.Context) {
	session, err := services.EndSession(c.Param("id"), time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// LogActivity records one activity within a session
// POST /api/v1/study/sessions/:id/activities
func LogActivity(c *gin.Context) {
	var req models.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	activity, err := services.LogActivity(c.Param("id"), &req, time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// RecordQuiz stores a completed quiz result
// POST /api/v1/study/quizzes
func RecordQuiz(c *gin.Context) {
	var req models.RecordQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	quiz, err := services.RecordQuiz(&req, time.Now().UTC())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}
