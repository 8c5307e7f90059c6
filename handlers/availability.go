package handlers

import (
	"net/http"
	"strconv"
	"time"

	"coachhub/middleware"
	"coachhub/models"
	"coachhub/services/availability"
	"coachhub/services/scheduling"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes weekly schedule management and slot lookups.
type AvailabilityHandler struct {
	Service availability.Service
	Slots   scheduling.SlotEngine
}

func NewAvailabilityHandler(service availability.Service, slots scheduling.SlotEngine) *AvailabilityHandler {
	return &AvailabilityHandler{Service: service, Slots: slots}
}

// SetWeeklyAvailabilityHandler replaces a coach's full weekly schedule.
func (h *AvailabilityHandler) SetWeeklyAvailabilityHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	windows, err := h.Service.SetWeeklyAvailability(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// GetCoachAvailabilityHandler expands a coach's windows into classified slots.
func (h *AvailabilityHandler) GetCoachAvailabilityHandler(c *gin.Context) {
	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be an integer"})
			return
		}
		duration = parsed
	}

	query := scheduling.AvailabilityQuery{
		CoachID:         c.Param("id"),
		StartDate:       c.Query("start"),
		EndDate:         c.Query("end"),
		DurationMinutes: duration,
	}
	days, err := h.Slots.GetCoachAvailability(c.Request.Context(), query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// AddBlockedRangeHandler blocks out a one-off time range for a coach.
func (h *AvailabilityHandler) AddBlockedRangeHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var req models.BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.AddBlockedRange(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blocked": block})
}

// ListBlockedRangesHandler lists a coach's blocked ranges.
func (h *AvailabilityHandler) ListBlockedRangesHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a valid RFC 3339 timestamp"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a valid RFC 3339 timestamp"})
			return
		}
		to = parsed
	}

	blocks, err := h.Service.ListBlockedRanges(c.Request.Context(), c.Param("id"), actor, from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}

// RemoveBlockedRangeHandler deletes a blocked range.
func (h *AvailabilityHandler) RemoveBlockedRangeHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
		return
	}

	if err := h.Service.RemoveBlockedRange(c.Request.Context(), c.Param("id"), actor, c.Param("blockId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
