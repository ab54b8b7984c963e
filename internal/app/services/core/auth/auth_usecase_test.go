package auth

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

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

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisRepository) CreateSession(ctx context.Context, session *models.Session, exp time.Duration) error {
	return m.Called(ctx, session, exp).Error(0)
}

func (m *mockRedisRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockRedisRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func newUsecase(users *mockUserRepository, redis *mockRedisRepository) *authUsecase {
	return &authUsecase{
		UserRepository:  users,
		RedisRepository: redis,
		InternalConfig: &config.InternalConfig{
			App: config.App{LoginSessionExpiredTimeInHours: 168},
			JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 168},
		},
		Log: zap.NewNop(),
	}
}

func TestRegister(t *testing.T) {
	registration := func(role string) *requests.Register {
		return &requests.Register{
			Email:    "new@clinic.test",
			Password: "password123",
			Role:     role,
			Name:     "New User",
		}
	}

	t.Run("creates the user and returns a usable token", func(t *testing.T) {
		users := new(mockUserRepository)
		redis := new(mockRedisRepository)
		users.On("FindByEmail", mock.Anything, "new@clinic.test").Return(nil, nil)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
			return user.Email == "new@clinic.test" &&
				user.Role == constvars.RoleTypePatient &&
				user.HashedPassword != "password123"
		})).Return("user-1", nil)
		redis.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		response, err := newUsecase(users, redis).Register(context.Background(), registration(constvars.RoleTypePatient))

		require.NoError(t, err)
		assert.Equal(t, "user-1", response.User.ID)

		sessionID, err := utils.ParseJWT(response.Token, "test-secret")
		require.NoError(t, err)
		assert.NotEmpty(t, sessionID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "new@clinic.test").Return(&models.User{Email: "new@clinic.test"}, nil)

		_, err := newUsecase(users, new(mockRedisRepository)).Register(context.Background(), registration(constvars.RoleTypePatient))

		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		users.AssertNotCalled(t, "CreateUser")
	})

	t.Run("specialty only persists for doctors", func(t *testing.T) {
		users := new(mockUserRepository)
		redis := new(mockRedisRepository)
		users.On("FindByEmail", mock.Anything, "new@clinic.test").Return(nil, nil)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
			return user.Specialty == ""
		})).Return("user-1", nil)
		redis.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		patient := registration(constvars.RoleTypePatient)
		patient.Specialty = "Cardiology"

		_, err := newUsecase(users, redis).Register(context.Background(), patient)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	hashed, _ := utils.HashPassword("password123")
	account := &models.User{
		ID:             primitive.NewObjectID(),
		Email:          "user@clinic.test",
		HashedPassword: hashed,
		Role:           constvars.RoleTypePatient,
		Name:           "Pat",
	}

	t.Run("correct credentials return a token", func(t *testing.T) {
		users := new(mockUserRepository)
		redis := new(mockRedisRepository)
		users.On("FindByEmail", mock.Anything, "user@clinic.test").Return(account, nil)
		redis.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		response, err := newUsecase(users, redis).Login(context.Background(), &requests.Login{
			Email:    "user@clinic.test",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, account.ID.Hex(), response.User.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "user@clinic.test").Return(account, nil)
		users.On("FindByEmail", mock.Anything, "ghost@clinic.test").Return(nil, nil)

		usecase := newUsecase(users, new(mockRedisRepository))

		_, badPassword := usecase.Login(context.Background(), &requests.Login{Email: "user@clinic.test", Password: "wrong"})
		_, badEmail := usecase.Login(context.Background(), &requests.Login{Email: "ghost@clinic.test", Password: "password123"})

		require.Error(t, badPassword)
		require.Error(t, badEmail)

		var first, second *exceptions.CustomError
		require.ErrorAs(t, badPassword, &first)
		require.ErrorAs(t, badEmail, &second)
		assert.Equal(t, first.ClientMessage, second.ClientMessage)
		assert.Equal(t, constvars.StatusUnauthorized, first.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	redis := new(mockRedisRepository)
	redis.On("DeleteSession", mock.Anything, "session-1").Return(nil)

	err := newUsecase(new(mockUserRepository), redis).Logout(context.Background(), `{"session_id":"session-1","user_id":"u1","role":"patient"}`)

	require.NoError(t, err)
	redis.AssertExpectations(t)
}
