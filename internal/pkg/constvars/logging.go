package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingMethodKey           = "method"
	LoggingEndpointKey         = "endpoint"
	LoggingRemoteAddrKey       = "remote_addr"
	LoggingUserAgentKey        = "user_agent"
	LoggingQueryKey            = "query"
	LoggingStatusCodeKey       = "status_code"
	LoggingDurationKey         = "duration"
	LoggingSuccessKey          = "success"
	LoggingDoctorIDKey         = "doctor_id"
	LoggingAppointmentIDKey    = "appointment_id"
	LoggingDateKey             = "date"
	LoggingRequestedTimeKey    = "requested_time"
	LoggingBookedTimesCountKey = "booked_times_count"
	LoggingSlotCountKey        = "slot_count"
	LoggingRedisKey            = "redis_key"
	LoggingLockValueKey        = "lock_value"
	LoggingLockExpirationKey   = "lock_expiration"
)
