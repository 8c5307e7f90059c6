package handlers

import (
	"net/http"
	"strconv"
	"time"

	"coachhub/middleware"
	"coachhub/models"
	"coachhub/services/booking"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes booking and lifecycle endpoints.
type SessionHandler struct {
	Service booking.SessionService
}

func NewSessionHandler(service booking.SessionService) *SessionHandler {
	return &SessionHandler{Service: service}
}

// BookSessionHandler reserves a slot for the authenticated mentee.
func (h *SessionHandler) BookSessionHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var req models.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.BookSession(c.Request.Context(), actor.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListSessionsHandler returns a filtered, paginated session listing.
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	filters := models.SessionFilters{
		Status:   c.Query("status"),
		CoachID:  c.Query("coachId"),
		MenteeID: c.Query("menteeId"),
	}
	if raw := c.Query("page"); raw != "" {
		filters.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("limit"); raw != "" {
		filters.Limit, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.From = &parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.To = &parsed
		}
	}

	page, err := h.Service.ListSessions(c.Request.Context(), actor, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSessionHandler returns one session for a participant or privileged actor.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	session, err := h.Service.GetSession(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSessionHandler applies a lifecycle action (reschedule/cancel/complete).
func (h *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateSession(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
