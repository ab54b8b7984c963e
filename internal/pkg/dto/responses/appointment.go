package responses

import "time"

type Appointment struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	DoctorID      string     `json:"doctorId"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   time.Time  `json:"endDateTime"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	NoShowMarkedAt *time.Time `json:"noShowMarkedAt,omitempty"`
}

// PatientAppointment is the patient-facing list item with the doctor joined in.
type PatientAppointment struct {
	Appointment
	DoctorName      string `json:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty,omitempty"`
}

// DoctorAppointment is the doctor-facing list item with the patient joined in.
type DoctorAppointment struct {
	Appointment
	PatientName string `json:"patientName"`
}
