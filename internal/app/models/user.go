package models

import (
	"medibook-service/internal/pkg/dto/requests"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashedPassword"`
	Role           string             `bson:"role"`
	Name           string             `bson:"name"`
	Phone          string             `bson:"phone,omitempty"`
	DOB            string             `bson:"dob,omitempty"`
	Specialty      string             `bson:"specialty,omitempty"`
	About          string             `bson:"about,omitempty"`
	Contact        string             `bson:"contact,omitempty"`
	AdditionalInfo string             `bson:"additionalInfo,omitempty"`
	TimeModel      `bson:",inline"`
}

func (u *User) SetDataForUpdateDoctorProfile(request *requests.UpdateDoctorProfile) {
	u.Name = request.Name
	u.Email = request.Email
	if request.Phone != "" {
		u.Phone = request.Phone
	}
	if request.Specialty != "" {
		u.Specialty = request.Specialty
	}
	if request.About != "" {
		u.About = request.About
	}
	if request.Contact != "" {
		u.Contact = request.Contact
	}
	if request.AdditionalInfo != "" {
		u.AdditionalInfo = request.AdditionalInfo
	}
}
