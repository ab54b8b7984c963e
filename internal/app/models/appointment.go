package models

import (
	"medibook-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientID      string             `bson:"patientId"`
	DoctorID       string             `bson:"doctorId"`
	StartDateTime  time.Time          `bson:"startDateTime"`
	EndDateTime    time.Time          `bson:"endDateTime"`
	Reason         string             `bson:"reason,omitempty"`
	Status         string             `bson:"status"`
	NoShowMarkedAt *time.Time         `bson:"noShowMarkedAt,omitempty"`
	TimeModel      `bson:",inline"`
}

// IsTerminal reports whether the appointment status permits no further transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status != constvars.AppointmentStatusUpcoming
}
