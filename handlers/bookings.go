package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "calbot/database/repository/booking"
	"calbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHistoryHandler serves the trail of completed bookings.
type BookingHistoryHandler struct {
	Repo   bookingRepo.Repository
	Logger *zap.Logger
}

func NewBookingHistoryHandler(repo bookingRepo.Repository, logger *zap.Logger) *BookingHistoryHandler {
	return &BookingHistoryHandler{Repo: repo, Logger: logger}
}

// ListBookings returns the most recent bookings, newest first.
// Accepts an optional ?limit= query parameter (default 50).
func (h *BookingHistoryHandler) ListBookings(c *gin.Context) {
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := h.Repo.List(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

// GetSessionBookings returns the bookings created within one chat session.
func (h *BookingHistoryHandler) GetSessionBookings(c *gin.Context) {
	sessionID := c.Param("sessionID")
	records, err := h.Repo.GetBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list session bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}
