package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/services/booking"
)

// bookingStatus maps booking conflict codes onto HTTP statuses. Conflicts are
// normal outcomes of slot races, not server errors.
var bookingStatus = map[string]int{
	booking.CodeSlotTaken:         http.StatusConflict,
	booking.CodeAlreadyBooked:     http.StatusConflict,
	booking.CodeLimitReached:      http.StatusConflict,
	booking.CodeDuplicateTimeSlot: http.StatusConflict,
	booking.CodeRoomFull:          http.StatusConflict,
	booking.CodeNotFound:          http.StatusNotFound,
}

// respondBookingError writes a booking failure. Conflict codes become 4xx
// responses with the code in the body; anything else is a 500.
func respondBookingError(c *gin.Context, err error) {
	var conflict *booking.Error
	if errors.As(err, &conflict) {
		status, ok := bookingStatus[conflict.Code]
		if !ok {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": conflict.Message, "code": conflict.Code})
		return
	}
	getLogger(c).Error("booking operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
