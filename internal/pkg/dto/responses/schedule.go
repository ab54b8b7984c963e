package responses

import "time"

type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Time      string    `json:"time"`
}

type DoctorAvailability struct {
	Doctor Doctor `json:"doctor"`
	Date   string `json:"date"`
	Slots  []Slot `json:"slots"`
}

type WeeklyAvailability struct {
	DoctorID     string              `json:"doctorId"`
	Availability map[string][]string `json:"availability"`
}
