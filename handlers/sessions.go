package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/services/booking"
)

type sessionBookRequest struct {
	TeamName string `json:"teamName" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Slot     string `json:"slot" binding:"required"`
}

// sessionEndpoints carries the handlers shared by the mentor and robot
// booking pages.
type sessionEndpoints struct {
	svc booking.SessionService
}

func (e sessionEndpoints) book(c *gin.Context) {
	var req sessionBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	b, err := e.svc.Book(c.Request.Context(), req.TeamName, req.Resource, req.Slot)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (e sessionEndpoints) cancel(c *gin.Context) {
	if err := e.svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (e sessionEndpoints) teamBookings(c *gin.Context) {
	bookings, err := e.svc.BookingsFor(c.Request.Context(), c.Query("team"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (e sessionEndpoints) allBookings(c *gin.Context) {
	bookings, err := e.svc.Bookings(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (e sessionEndpoints) adminUpdate(c *gin.Context) {
	var req struct {
		Resource string `json:"resource" binding:"required"`
		Slot     string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := e.svc.AdminUpdate(c.Request.Context(), c.Param("id"), req.Resource, req.Slot); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (e sessionEndpoints) adminDelete(c *gin.Context) {
	if err := e.svc.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// MentorHandler exposes the mentor session booking endpoints.
type MentorHandler struct {
	sessionEndpoints
	Svc      booking.MentorService
	Schedule config.EventSchedule
	Logger   *zap.Logger
}

func NewMentorHandler(svc booking.MentorService, schedule config.EventSchedule, logger *zap.Logger) *MentorHandler {
	return &MentorHandler{
		sessionEndpoints: sessionEndpoints{svc: svc},
		Svc:              svc,
		Schedule:         schedule,
		Logger:           logger,
	}
}

func (h *MentorHandler) BookHandler(c *gin.Context)         { h.book(c) }
func (h *MentorHandler) CancelHandler(c *gin.Context)       { h.cancel(c) }
func (h *MentorHandler) TeamBookingsHandler(c *gin.Context) { h.teamBookings(c) }
func (h *MentorHandler) BookingsHandler(c *gin.Context)     { h.allBookings(c) }
func (h *MentorHandler) AdminUpdateHandler(c *gin.Context)  { h.adminUpdate(c) }
func (h *MentorHandler) AdminDeleteHandler(c *gin.Context)  { h.adminDelete(c) }

// BookByRoomHandler books any free mentor stationed in the requested room.
func (h *MentorHandler) BookByRoomHandler(c *gin.Context) {
	var req struct {
		TeamName string `json:"teamName" binding:"required"`
		Room     string `json:"room" binding:"required"`
		Slot     string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	b, err := h.Svc.BookByRoom(c.Request.Context(), req.TeamName, req.Room, req.Slot)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// AvailabilityHandler returns the session slots, the per-slot room fullness
// and the caller's bookings.
func (h *MentorHandler) AvailabilityHandler(c *gin.Context) {
	slots := h.Schedule.SessionSlots()
	fullness := make(map[string]map[string]bool, len(slots))
	for _, slot := range slots {
		full, err := h.Svc.RoomsFullAt(c.Request.Context(), slot)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		fullness[slot] = full
	}

	payload := gin.H{
		"slots":    slots,
		"rooms":    h.Schedule.MentorRooms(),
		"fullness": fullness,
	}
	if team := c.Query("team"); team != "" {
		bookings, err := h.Svc.BookingsFor(c.Request.Context(), team)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		payload["teamBookings"] = bookings
	}
	c.JSON(http.StatusOK, payload)
}

// RobotHandler exposes the robot demo session booking endpoints.
type RobotHandler struct {
	sessionEndpoints
	Svc      booking.SessionService
	Schedule config.EventSchedule
	Logger   *zap.Logger
}

func NewRobotHandler(svc booking.SessionService, schedule config.EventSchedule, logger *zap.Logger) *RobotHandler {
	return &RobotHandler{
		sessionEndpoints: sessionEndpoints{svc: svc},
		Svc:              svc,
		Schedule:         schedule,
		Logger:           logger,
	}
}

func (h *RobotHandler) BookHandler(c *gin.Context)         { h.book(c) }
func (h *RobotHandler) CancelHandler(c *gin.Context)       { h.cancel(c) }
func (h *RobotHandler) TeamBookingsHandler(c *gin.Context) { h.teamBookings(c) }
func (h *RobotHandler) BookingsHandler(c *gin.Context)     { h.allBookings(c) }
func (h *RobotHandler) AdminUpdateHandler(c *gin.Context)  { h.adminUpdate(c) }
func (h *RobotHandler) AdminDeleteHandler(c *gin.Context)  { h.adminDelete(c) }

// AvailabilityHandler returns the room-by-slot occupancy grid.
func (h *RobotHandler) AvailabilityHandler(c *gin.Context) {
	grid, err := h.Svc.OccupancyMap(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	occupied := make(map[string]map[string]string)
	for key, team := range grid {
		if occupied[key.SlotLabel] == nil {
			occupied[key.SlotLabel] = make(map[string]string)
		}
		occupied[key.SlotLabel][key.Resource] = team
	}

	payload := gin.H{
		"slots":    h.Schedule.SessionSlots(),
		"rooms":    h.Schedule.RobotRooms,
		"occupied": occupied,
	}
	if team := c.Query("team"); team != "" {
		bookings, err := h.Svc.BookingsFor(c.Request.Context(), team)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		payload["teamBookings"] = bookings
	}
	c.JSON(http.StatusOK, payload)
}
