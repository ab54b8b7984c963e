package constvars

// Client-facing error messages
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please login first"
	ErrClientInvalidEmailOrPassword        = "Invalid email or password"
	ErrClientEmailAlreadyExists            = "Email already registered"
	ErrClientInvalidRole                   = "Role must be either patient or doctor"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientUserNotFound                  = "User not found"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientNoCurrentAppointment          = "No current appointment found"
	ErrClientSlotAlreadyBooked             = "Time slot already booked, please pick another slot"
	ErrClientSlotNotOffered                = "Requested time does not match any offered slot for that date"
	ErrClientLeadTimeViolation             = "Appointments must be booked at least 1 hour in advance"
	ErrClientInvalidAppointmentDuration    = "Appointments must be exactly 30 minutes long"
	ErrClientOnlyUpcomingReschedulable     = "Can only reschedule upcoming appointments"
	ErrClientOnlyUpcomingCancellable       = "Can only cancel upcoming appointments"
	ErrClientOnlyUpcomingMarkable          = "Can only mark upcoming appointments"
	ErrClientDateParamRequired             = "Date parameter required (YYYY-MM-DD)"
	ErrClientNoFieldsToUpdate              = "No fields to update"
	ErrClientAvailabilityRequired          = "Availability is required"
	ErrClientAvailabilityWeekdays          = "Availability must contain each weekday: Monday through Sunday"
	ErrClientAvailabilityBadTimeFormat     = `Availability for %s must be an array of strings in the format "HH:MM"`
)

// Developer-facing error messages
const (
	ErrDevValidationFailed           = "VALIDATION_FAILED"
	ErrDevInvalidRequestPayload      = "INVALID_REQUEST_PAYLOAD"
	ErrDevCannotParseJSON            = "CANNOT_PARSE_JSON"
	ErrDevCannotParseDate            = "CANNOT_PARSE_DATE"
	ErrDevInvalidInput               = "INVALID_INPUT"
	ErrDevURLParamIDValidationFailed = "URL_PARAM_%s_VALIDATION_FAILED"
	ErrDevFailedToHashPassword       = "FAILED_TO_HASH_PASSWORD"
	ErrDevInvalidCredentials         = "INVALID_CREDENTIALS"
	ErrDevEmailAlreadyExists         = "EMAIL_ALREADY_EXISTS"
	ErrDevUserNotExists              = "USER_NOT_EXISTS"
	ErrDevDoctorNotExists            = "DOCTOR_NOT_EXISTS"
	ErrDevAppointmentNotExists       = "APPOINTMENT_NOT_EXISTS"
	ErrDevAppointmentConflict        = "APPOINTMENT_CONFLICT"
	ErrDevAppointmentBadState        = "APPOINTMENT_BAD_STATE"
	ErrDevAuthTokenMissing           = "AUTH_TOKEN_MISSING"
	ErrDevAuthTokenInvalid           = "AUTH_TOKEN_INVALID"
	ErrDevAuthTokenInvalidOrExpired  = "AUTH_TOKEN_INVALID_OR_EXPIRED"
	ErrDevAuthGenerateToken          = "AUTH_GENERATE_TOKEN_FAILED"
	ErrDevAuthSigningMethod          = "AUTH_UNEXPECTED_SIGNING_METHOD"
	ErrDevAuthInvalidSession         = "AUTH_INVALID_SESSION"
	ErrDevInvalidRoleType            = "INVALID_ROLE_TYPE"
	ErrDevRoleTypeDoesntMatch        = "ROLE_TYPE_DOESNT_MATCH"
	ErrDevServerDeadlineExceeded     = "SERVER_DEADLINE_EXCEEDED"
	ErrDevMissingRequestID           = "MISSING_REQUEST_ID"
	ErrDevMissingSessionData         = "MISSING_SESSION_DATA"
	ErrDevCannotMarshalJSON          = "CANNOT_MARSHAL_JSON"

	ErrDevDBFailedToFindDocument     = "DB_FAILED_TO_FIND_DOCUMENT"
	ErrDevDBFailedToInsertDocument   = "DB_FAILED_TO_INSERT_DOCUMENT"
	ErrDevDBFailedToUpdateDocument   = "DB_FAILED_TO_UPDATE_DOCUMENT"
	ErrDevDBFailedToDeleteDocument   = "DB_FAILED_TO_DELETE_DOCUMENT"
	ErrDevDBFailedToIterateDocuments = "DB_FAILED_TO_ITERATE_DOCUMENTS"
	ErrDevDBFailedToCountDocuments   = "DB_FAILED_TO_COUNT_DOCUMENTS"
	ErrDevDBStringNotObjectID        = "DB_STRING_NOT_OBJECT_ID"
	ErrDevDBDuplicateKey             = "DB_DUPLICATE_KEY"

	ErrDevRedisSet        = "REDIS_SET_FAILED"
	ErrDevRedisGet        = "REDIS_GET_FAILED"
	ErrDevRedisDelete     = "REDIS_DELETE_FAILED"
	ErrDevRedisLock       = "REDIS_LOCK_FAILED"
	ErrDevRedisUnlock     = "REDIS_UNLOCK_FAILED"
	ErrDevSlotLockHeld    = "SLOT_LOCK_HELD_BY_ANOTHER_REQUEST"
	ErrDevLeadTimeTooSoon = "LEAD_TIME_TOO_SOON"
	ErrDevSlotNotOffered  = "SLOT_NOT_OFFERED"
	ErrDevBadSlotDuration = "BAD_SLOT_DURATION"

	ResponseUnknown = "unknown"
)

// CustomValidationErrorMessages maps validator tags to client-facing fragments.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "must be at least %s characters long",
	"max":      "must be at most %s characters long",
	"oneof":    "must be one of: %s",
	"datetime": "must match the format %s",
}

// TagsWithParams marks validator tags whose message takes the tag parameter.
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}
