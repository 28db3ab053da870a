package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"gt":          "must be greater than %s",
	"gte":         "must be greater than or equal to %s",
	"numeric":     "must be a number",
	"oneof":       "must be one of [%s]",
	"time_of_day": "must be a valid time of day in HH:MM format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientStoreUnavailable              = "the service is temporarily unavailable, please try again"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientDateRequired                  = "date is required in YYYY-MM-DD format"
	ErrClientSlotConflictFormat            = "the time slot %s is already booked, please choose another time"
	ErrClientInvalidWorkingHours           = "the doctor's working hours are invalid"
)

// Error messages for developers
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseDate           = "cannot parse the requested date"
	ErrDevInvalidDateParam          = "date query parameter missing or not in YYYY-MM-DD format"
	ErrDevDoctorNotExists           = "doctor does not exist"
	ErrDevAppointmentNotExists      = "appointment does not exist"
	ErrDevSlotAlreadyBooked         = "requested time of day is already booked for this doctor"
	ErrDevWorkingHoursInvalidRange  = "working hours start must be strictly before end"
	ErrDevServerDeadlineExceeded    = "the server exceeds the deadline of a process"
	ErrDevStoreUnavailable          = "a backing store is unreachable"
	ErrDevDBFailedToFindDocument    = "database failed to find document"
	ErrDevDBFailedToInsertDocument  = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "database failed to update document"
	ErrDevDBFailedToDeleteDocument  = "database failed to delete document"
	ErrDevDBFailedToIterateDocument = "database failed to iterate documents"
	ErrDevDBStringNotObjectID       = "the given string is not a valid ObjectID"
	ErrDevRedisFailedToSet          = "redis failed to set value"
	ErrDevRedisFailedToGet          = "redis failed to get value"
	ErrDevRedisFailedToDelete       = "redis failed to delete key"
	ErrDevRedisFailedToUnlock       = "redis failed to release lock"
)
