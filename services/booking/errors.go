package booking

import (
	"errors"
	"fmt"
)

// Machine-readable conflict codes. Every booking failure surfaces as one of
// these; none of them is fatal and none is retried automatically.
const (
	CodeSlotTaken         = "SLOT_TAKEN"
	CodeAlreadyBooked     = "ALREADY_BOOKED"
	CodeLimitReached      = "LIMIT_REACHED"
	CodeDuplicateTimeSlot = "DUPLICATE_TIME_SLOT"
	CodeRoomFull          = "ROOM_FULL"
	CodeNotFound          = "NOT_FOUND"
)

// Error is a user-facing booking conflict.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrCode returns the booking conflict code carried by err, or "" when err is
// not a booking conflict.
func ErrCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
