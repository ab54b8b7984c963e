package users

import (
	"context"
	"errors"
	"testing"

	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const doctorSession = `{"user_id":"64a000000000000000000001","role":"doctor","session_id":"sess-1"}`

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, userModel *models.User) (string, error) {
	args := m.Called(ctx, userModel)
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
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newDoctorUsecase(userRepo *mockUserRepository) *doctorUsecase {
	return &doctorUsecase{
		UserRepository: userRepo,
		Log:            zap.NewNop(),
	}
}

func testDoctor() *models.User {
	id, _ := primitive.ObjectIDFromHex("64a000000000000000000001")
	return &models.User{
		ID:        id,
		Email:     "chen@example.com",
		Role:      "doctor",
		Name:      "Dr. Chen",
		Specialty: "Cardiology",
	}
}

func TestListDoctors(t *testing.T) {
	t.Run("maps doctors to response objects", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctors", mock.Anything, "Cardiology").Return([]models.User{*testDoctor()}, nil)

		doctors, err := uc.ListDoctors(context.Background(), "Cardiology")
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "64a000000000000000000001", doctors[0].ID)
		assert.Equal(t, "Dr. Chen", doctors[0].Name)
		assert.Equal(t, "Cardiology", doctors[0].Specialty)
	})

	t.Run("empty result is an empty list, not nil", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctors", mock.Anything, "").Return([]models.User{}, nil)

		doctors, err := uc.ListDoctors(context.Background(), "")
		require.NoError(t, err)
		assert.NotNil(t, doctors)
		assert.Empty(t, doctors)
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctors", mock.Anything, "").Return(nil, errors.New("connection reset"))

		_, err := uc.ListDoctors(context.Background(), "")
		require.Error(t, err)
	})
}

func TestListSpecialties(t *testing.T) {
	userRepo := new(mockUserRepository)
	uc := newDoctorUsecase(userRepo)

	userRepo.On("FindDoctorSpecialties", mock.Anything).Return([]string{"Pediatrics", "Cardiology", "Dermatology"}, nil)

	specialties, err := uc.ListSpecialties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Dermatology", "Pediatrics"}, specialties)
}

func TestGetProfile(t *testing.T) {
	t.Run("returns the doctor's own profile", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctorByID", mock.Anything, "64a000000000000000000001").Return(testDoctor(), nil)

		profile, err := uc.GetProfile(context.Background(), doctorSession)
		require.NoError(t, err)
		assert.Equal(t, "64a000000000000000000001", profile.ID)
		assert.Equal(t, "chen@example.com", profile.Email)
	})

	t.Run("missing doctor is not found", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctorByID", mock.Anything, "64a000000000000000000001").Return(nil, nil)

		_, err := uc.GetProfile(context.Background(), doctorSession)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates name and optional fields", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctorByID", mock.Anything, "64a000000000000000000001").Return(testDoctor(), nil)
		userRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
			return user.Name == "Dr. A. Chen" && user.About == "Board certified" && user.Specialty == "Cardiology"
		})).Return(nil)

		err := uc.UpdateProfile(context.Background(), doctorSession, &requests.UpdateDoctorProfile{
			Name:  "Dr. A. Chen",
			Email: "chen@example.com",
			About: "Board certified",
		})
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("keeping the current email skips the uniqueness lookup", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		userRepo.On("FindDoctorByID", mock.Anything, "64a000000000000000000001").Return(testDoctor(), nil)
		userRepo.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)

		err := uc.UpdateProfile(context.Background(), doctorSession, &requests.UpdateDoctorProfile{
			Name:  "Dr. Chen",
			Email: "chen@example.com",
		})
		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "FindByEmailExcludingID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("changing to another user's email is rejected", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		uc := newDoctorUsecase(userRepo)

		other := testDoctor()
		other.ID = primitive.NewObjectID()
		userRepo.On("FindDoctorByID", mock.Anything, "64a000000000000000000001").Return(testDoctor(), nil)
		userRepo.On("FindByEmailExcludingID", mock.Anything, "taken@example.com", "64a000000000000000000001").Return(other, nil)

		err := uc.UpdateProfile(context.Background(), doctorSession, &requests.UpdateDoctorProfile{
			Name:  "Dr. Chen",
			Email: "taken@example.com",
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}
