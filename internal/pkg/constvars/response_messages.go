package constvars

// Success messages
const (
	RegisterSuccessMessage                 = "Registered successfully"
	LoginSuccessMessage                    = "Logged in successfully"
	LogoutSuccessMessage                   = "Logged out successfully"
	GetProfileSuccessMessage               = "Profile retrieved successfully"
	UpdateProfileSuccessMessage            = "Profile updated successfully"
	GetDoctorsSuccessMessage               = "Doctors retrieved successfully"
	GetSpecialtiesSuccessMessage           = "Specialties retrieved successfully"
	GetDoctorAvailabilitySuccessMessage    = "Doctor availability retrieved successfully"
	GetAppointmentSuccessMessage           = "Appointments retrieved successfully"
	CreateAppointmentSuccessMessage        = "Appointment booked successfully"
	RescheduleAppointmentSuccessMessage    = "Appointment rescheduled successfully"
	CancelAppointmentSuccessMessage        = "Appointment cancelled successfully"
	MarkNoShowSuccessMessage               = "Appointment marked as no-show successfully. Time slot locked for 10 minutes."
	MarkCompletedSuccessMessage            = "Appointment marked as completed successfully"
	GetWeeklyAvailabilitySuccessMessage    = "Weekly availability retrieved successfully"
	UpdateWeeklyAvailabilitySuccessMessage = "Weekly availability updated successfully"
)
