package requests

// UpdateWeeklyAvailability replaces a doctor's weekly template wholesale.
// The map must contain all seven weekday keys; each value is a set of
// "HH:MM" slot start times. Shape is validated field by field in the usecase
// so the caller gets a message naming the offending weekday.
type UpdateWeeklyAvailability struct {
	Availability map[string][]string `json:"availability"`
}
