package auth

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository  contracts.UserRepository
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			UserRepository:  userRepository,
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.Register) (*responses.Auth, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:          request.Email,
		HashedPassword: hashedPassword,
		Role:           request.Role,
		Name:           request.Name,
		Phone:          request.Phone,
		DOB:            request.DOB,
	}
	if request.Role == constvars.RoleTypeDoctor {
		user.Specialty = request.Specialty
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := uc.createSession(ctx, userID, request.Role, request.Email, request.Name)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.Auth{
		Token: token,
		User: responses.UserSummary{
			ID:    userID,
			Email: request.Email,
			Role:  request.Role,
			Name:  request.Name,
		},
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Auth, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	if !utils.CheckPasswordHash(request.Password, user.HashedPassword) {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	token, err := uc.createSession(ctx, user.ID.Hex(), user.Role, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.Auth{
		Token: token,
		User: responses.UserSummary{
			ID:    user.ID.Hex(),
			Email: user.Email,
			Role:  user.Role,
			Name:  user.Name,
		},
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionData string) error {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return err
	}
	return uc.RedisRepository.DeleteSession(ctx, session.SessionID)
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, sessionData string) (*responses.UserProfile, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	return &responses.UserProfile{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Role:      user.Role,
		Name:      user.Name,
		Phone:     user.Phone,
		DOB:       user.DOB,
		Specialty: user.Specialty,
	}, nil
}

func (uc *authUsecase) createSession(ctx context.Context, userID, role, email, name string) (string, error) {
	session := &models.Session{
		SessionID: utils.GenerateSessionID(),
		UserID:    userID,
		Role:      role,
		Email:     email,
		Name:      name,
	}

	sessionTTL := time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
	if err := uc.RedisRepository.CreateSession(ctx, session, sessionTTL); err != nil {
		return "", err
	}

	tokenTTL := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	return utils.GenerateJWT(session.SessionID, uc.InternalConfig.JWT.Secret, tokenTTL)
}
