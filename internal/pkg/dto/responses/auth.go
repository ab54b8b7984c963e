package responses

type Auth struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

type DoctorProfile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialty      string `json:"specialty"`
	About          string `json:"about"`
	Contact        string `json:"contact"`
	AdditionalInfo string `json:"additionalInfo"`
}
