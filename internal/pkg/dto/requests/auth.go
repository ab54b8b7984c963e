package requests

type Register struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=patient doctor"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	DOB       string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Specialty string `json:"specialty,omitempty"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateDoctorProfile struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	About          string `json:"about,omitempty"`
	Contact        string `json:"contact,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}
