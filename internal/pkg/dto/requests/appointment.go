package requests

import "time"

type CreateAppointment struct {
	DoctorID      string    `json:"doctorId" validate:"required"`
	StartDateTime time.Time `json:"startDateTime" validate:"required"`
	EndDateTime   time.Time `json:"endDateTime" validate:"required"`
	Reason        string    `json:"reason,omitempty"`
}

// RescheduleAppointment carries a partial update. Nil fields are left as-is;
// supplying either time requires the other to stay a valid 30-minute slot.
type RescheduleAppointment struct {
	StartDateTime *time.Time `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
}

type AppointmentListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}
