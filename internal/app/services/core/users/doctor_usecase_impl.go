package users

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	UserRepository contracts.UserRepository
	Log            *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(userRepository contracts.UserRepository, logger *zap.Logger) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			UserRepository: userRepository,
			Log:            logger,
		}
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context, specialty string) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.UserRepository.FindDoctors(ctx, specialty)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		response = append(response, responses.Doctor{
			ID:        doctor.ID.Hex(),
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
			Email:     doctor.Email,
		})
	}
	return response, nil
}

func (uc *doctorUsecase) ListSpecialties(ctx context.Context) ([]string, error) {
	specialties, err := uc.UserRepository.FindDoctorSpecialties(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(specialties)
	return specialties, nil
}

func (uc *doctorUsecase) GetProfile(ctx context.Context, sessionData string) (*responses.DoctorProfile, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.UserRepository.FindDoctorByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}

	return &responses.DoctorProfile{
		ID:             doctor.ID.Hex(),
		Name:           doctor.Name,
		Email:          doctor.Email,
		Phone:          doctor.Phone,
		Specialty:      doctor.Specialty,
		About:          doctor.About,
		Contact:        doctor.Contact,
		AdditionalInfo: doctor.AdditionalInfo,
	}, nil
}

func (uc *doctorUsecase) UpdateProfile(ctx context.Context, sessionData string, request *requests.UpdateDoctorProfile) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return err
	}

	doctor, err := uc.UserRepository.FindDoctorByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotExist(nil)
	}

	// Email uniqueness, allowing the doctor to keep their current address.
	if request.Email != doctor.Email {
		existingUser, err := uc.UserRepository.FindByEmailExcludingID(ctx, request.Email, session.UserID)
		if err != nil {
			return err
		}
		if existingUser != nil {
			return exceptions.ErrEmailAlreadyExist(nil)
		}
	}

	doctor.SetDataForUpdateDoctorProfile(request)
	doctor.UpdatedAt = time.Now()

	err = uc.UserRepository.UpdateUser(ctx, doctor)
	if err != nil {
		return err
	}

	uc.Log.Info("doctorUsecase.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.UserID),
	)
	return nil
}
