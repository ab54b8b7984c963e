package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	CreateUser(ctx context.Context, userModel *models.User) (userID string, err error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailExcludingID(ctx context.Context, email, excludeUserID string) (*models.User, error)
	FindDoctorByID(ctx context.Context, doctorID string) (*models.User, error)
	FindDoctors(ctx context.Context, specialty string) ([]models.User, error)
	FindDoctorSpecialties(ctx context.Context) ([]string, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, specialty string) ([]responses.Doctor, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, sessionData string) (*responses.DoctorProfile, error)
	UpdateProfile(ctx context.Context, sessionData string, request *requests.UpdateDoctorProfile) error
}
