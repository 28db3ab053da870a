package exceptions

import (
	"errors"
	"fmt"
	"net/http"

	"medisched-service/internal/pkg/constvars"
)

// ErrSlotTaken is the sentinel returned by appointment repositories when the
// store's uniqueness constraint on (doctorId, slot) rejects a write. The
// booking coordinator translates it into a slot conflict; it must never reach
// the transport layer as-is.
var ErrSlotTaken = errors.New("slot already taken")

// SlotConflictDetails is attached to a conflict response so clients can offer
// alternative times without a second availability call.
type SlotConflictDetails struct {
	RequestedTime string   `json:"requestedTime"`
	BookedTimes   []string `json:"bookedTimes"`
}

var (
	ErrInputValidation = func(err error) *CustomError {
		return WrapWithError(err, http.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return WrapWithError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return WrapWithError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate)
	}
	ErrInvalidDateParam = func(err error) *CustomError {
		return WrapWithError(err, http.StatusBadRequest, constvars.ErrClientDateRequired, constvars.ErrDevInvalidDateParam)
	}
	ErrDoctorNotFound = func(err error) *CustomError {
		return WrapWithError(err, http.StatusNotFound, constvars.ErrClientDoctorNotFound, constvars.ErrDevDoctorNotExists)
	}
	ErrAppointmentNotFound = func(err error) *CustomError {
		return WrapWithError(err, http.StatusNotFound, constvars.ErrClientAppointmentNotFound, constvars.ErrDevAppointmentNotExists)
	}
	ErrInvalidWorkingHours = func(err error) *CustomError {
		return WrapWithError(err, http.StatusUnprocessableEntity, constvars.ErrClientInvalidWorkingHours, constvars.ErrDevWorkingHoursInvalidRange)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return WrapWithError(err, http.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrStoreUnavailable = func(err error) *CustomError {
		return WrapWithError(err, http.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevStoreUnavailable)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocument)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return WrapWithError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBStringNotObjectID)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToSet)
	}
	ErrRedisGet = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToGet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return WrapWithError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToUnlock)
	}
)

// ErrSlotConflict reports a booking collision. It keeps the full booked-times
// list of the doctor's day in the response payload.
func ErrSlotConflict(requestedTime string, bookedTimes []string) *CustomError {
	customError := WrapWithoutError(
		http.StatusConflict,
		fmt.Sprintf(constvars.ErrClientSlotConflictFormat, requestedTime),
		constvars.ErrDevSlotAlreadyBooked,
	)
	customError.Details = SlotConflictDetails{
		RequestedTime: requestedTime,
		BookedTimes:   bookedTimes,
	}
	return customError
}

// IsSlotConflict reports whether err is a slot conflict, regardless of how
// many layers wrapped it.
func IsSlotConflict(err error) bool {
	var customError *CustomError
	return errors.As(err, &customError) && customError.StatusCode == http.StatusConflict
}
