package appointments

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepository) FindActiveInWindow(ctx context.Context, doctorID, patientID string, start, end time.Time, excludeID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, patientID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindByPatient(ctx context.Context, patientID string, filter *requests.AppointmentListFilter, pagination *requests.Pagination) ([]models.Appointment, int, error) {
	args := m.Called(ctx, patientID, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Appointment), args.Int(1), args.Error(2)
}

func (m *mockAppointmentRepository) FindCurrentForDoctor(ctx context.Context, doctorID string, now time.Time) (*models.Appointment, error) {
	args := m.Called(ctx, doctorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindUpcomingForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindPastForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmailExcludingID(ctx context.Context, email, excludeUserID string) (*models.User, error) {
	args := m.Called(ctx, email, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindDoctorByID(ctx context.Context, doctorID string) (*models.User, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindDoctors(ctx context.Context, specialty string) ([]models.User, error) {
	args := m.Called(ctx, specialty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepository) FindDoctorSpecialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockAvailabilityRepository struct {
	mock.Mock
}

func (m *mockAvailabilityRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyAvailability), args.Error(1)
}

func (m *mockAvailabilityRepository) Upsert(ctx context.Context, availability *models.WeeklyAvailability) (bool, error) {
	args := m.Called(ctx, availability)
	return args.Bool(0), args.Error(1)
}

type mockLockerService struct {
	mock.Mock
}

func (m *mockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}
