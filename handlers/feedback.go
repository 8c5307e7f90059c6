package handlers

import (
	"net/http"

	"coachhub/middleware"
	"coachhub/models"
	"coachhub/services/feedback"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler exposes the one-shot feedback endpoint.
type FeedbackHandler struct {
	Gate feedback.Gate
}

func NewFeedbackHandler(gate feedback.Gate) *FeedbackHandler {
	return &FeedbackHandler{Gate: gate}
}

// SubmitFeedbackHandler records the mentee's review of a completed session.
func (h *FeedbackHandler) SubmitFeedbackHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, err := h.Gate.SubmitFeedback(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": record})
}

// GetFeedbackHandler returns the feedback for a session, if any.
func (h *FeedbackHandler) GetFeedbackHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	record, err := h.Gate.GetFeedback(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": record})
}
