package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WeeklyAvailability is a doctor's recurring template: weekday name to the set
// of "HH:MM" slot start times offered on that weekday. One document per doctor,
// replaced wholesale on update.
type WeeklyAvailability struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	DoctorID     string              `bson:"doctorId"`
	Availability map[string][]string `bson:"availability"`
	TimeModel    `bson:",inline"`
}
