package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error

	// FindActiveInWindow returns the non-cancelled appointments of a doctor or a
	// patient (either ID may be empty) overlapping [start, end), optionally
	// excluding one appointment by ID.
	FindActiveInWindow(ctx context.Context, doctorID, patientID string, start, end time.Time, excludeID string) ([]models.Appointment, error)

	FindByPatient(ctx context.Context, patientID string, filter *requests.AppointmentListFilter, pagination *requests.Pagination) ([]models.Appointment, int, error)
	FindCurrentForDoctor(ctx context.Context, doctorID string, now time.Time) (*models.Appointment, error)
	FindUpcomingForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error)
	FindPastForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error)
}

type AppointmentUsecase interface {
	// Patient side
	FindAll(ctx context.Context, sessionData string, filter *requests.AppointmentListFilter, pagination *requests.Pagination) ([]responses.PatientAppointment, int, error)
	Create(ctx context.Context, sessionData string, request *requests.CreateAppointment) (*responses.Appointment, error)
	Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointment) (*responses.Appointment, error)
	Cancel(ctx context.Context, sessionData, appointmentID string) error

	// Doctor side
	FindCurrentForDoctor(ctx context.Context, sessionData string) (*responses.DoctorAppointment, error)
	FindUpcomingForDoctor(ctx context.Context, sessionData string) ([]responses.DoctorAppointment, error)
	FindPastForDoctor(ctx context.Context, sessionData string) ([]responses.DoctorAppointment, error)
	MarkNoShow(ctx context.Context, sessionData, appointmentID string) error
	MarkCompleted(ctx context.Context, sessionData, appointmentID string) error
	CancelByDoctor(ctx context.Context, sessionData, appointmentID string) error
}
