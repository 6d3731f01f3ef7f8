package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/services/booking"
)

// PrelimHandler exposes the prelim judging booking page endpoints.
type PrelimHandler struct {
	Svc      booking.PrelimService
	Schedule config.EventSchedule
	Logger   *zap.Logger
}

func NewPrelimHandler(svc booking.PrelimService, schedule config.EventSchedule, logger *zap.Logger) *PrelimHandler {
	return &PrelimHandler{Svc: svc, Schedule: schedule, Logger: logger}
}

type prelimBookRequest struct {
	TeamName string `json:"teamName" binding:"required"`
	Slot     string `json:"slot" binding:"required"`
	Room     string `json:"room" binding:"required"`
}

// AvailabilityHandler returns the slot grid, the occupancy map and the
// caller's current booking in one payload for the booking page.
func (h *PrelimHandler) AvailabilityHandler(c *gin.Context) {
	grid, err := h.Svc.OccupancyMap(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	// Flatten the occupancy map for JSON: slot -> room -> team.
	occupied := make(map[string]map[string]string)
	for key, team := range grid {
		if occupied[key.SlotLabel] == nil {
			occupied[key.SlotLabel] = make(map[string]string)
		}
		occupied[key.SlotLabel][key.Resource] = team
	}

	payload := gin.H{
		"slots":    h.Schedule.PrelimSlots,
		"rooms":    h.Schedule.PrelimRooms,
		"occupied": occupied,
	}
	if team := c.Query("team"); team != "" {
		current, err := h.Svc.BookingFor(c.Request.Context(), team)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		payload["currentBooking"] = current
	}
	c.JSON(http.StatusOK, payload)
}

// BookHandler books a slot for a team with no existing booking.
func (h *PrelimHandler) BookHandler(c *gin.Context) {
	var req prelimBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), req.TeamName, req.Slot, req.Room)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// SwitchHandler moves a team's booking to a new slot.
func (h *PrelimHandler) SwitchHandler(c *gin.Context) {
	var req prelimBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	b, err := h.Svc.Switch(c.Request.Context(), req.TeamName, req.Slot, req.Room)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// BookingsHandler lists every prelim booking (admin console).
func (h *PrelimHandler) BookingsHandler(c *gin.Context) {
	bookings, err := h.Svc.Bookings(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AdminUpdateHandler moves any booking to a new slot.
func (h *PrelimHandler) AdminUpdateHandler(c *gin.Context) {
	var req struct {
		Slot string `json:"slot" binding:"required"`
		Room string `json:"room" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.AdminUpdate(c.Request.Context(), c.Param("id"), req.Slot, req.Room); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AdminDeleteHandler removes a booking.
func (h *PrelimHandler) AdminDeleteHandler(c *gin.Context) {
	if err := h.Svc.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// HistoryHandler returns the booking audit log, newest first.
func (h *PrelimHandler) HistoryHandler(c *gin.Context) {
	events, err := h.Svc.History(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": events})
}

// TeamsInRoomHandler lists booked teams for one room, for the judge console.
func (h *PrelimHandler) TeamsInRoomHandler(c *gin.Context) {
	teams, err := h.Svc.TeamsInRoom(c.Request.Context(), c.Param("room"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}
