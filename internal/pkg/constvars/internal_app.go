package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         contextKey = "session_data"
)

// Roles
const (
	RoleTypePatient = "patient"
	RoleTypeDoctor  = "doctor"
)

// Mongo collections
const (
	MongoCollectionUsers        = "users"
	MongoCollectionAppointments = "appointments"
	MongoCollectionAvailability = "availability"
)

// Appointment statuses
const (
	AppointmentStatusUpcoming  = "upcoming"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no-show"
)

// WeekdayKeys lists the mandatory keys of a weekly availability template.
var WeekdayKeys = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Date and time formats
const (
	DateFormatYYYYMMDD   = "2006-01-02"
	TimeFormatHHMM       = "15:04"
	TimeFormatHumanLabel = "3:04 PM"
)

// Redis key prefixes
const (
	RedisSessionKeyPrefix  = "session:"
	RedisSlotLockKeyPrefix = "slot_lock:"
)
