package config

type InternalConfig struct {
	App     App
	JWT     JWT
	Booking Booking
}

type App struct {
	Env                            string
	Port                           string
	Version                        string
	Address                        string
	Timezone                       string
	EndpointPrefix                 string
	MaxRequests                    int
	ShutdownTimeoutInSeconds       int
	RequestBodyLimitInMegabyte     int
	LoginSessionExpiredTimeInHours int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

// Booking holds the clinic-wide scheduling policy. Slot length, the minimum
// notice for a booking, and how long a slot stays held after a no-show.
type Booking struct {
	SlotDurationInMinutes    int
	MinimumLeadTimeInMinutes int
	NoShowLockInMinutes      int
	SlotLockTimeoutInSeconds int
}
