package schedule

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	UserRepository         contracts.UserRepository
	AvailabilityRepository contracts.AvailabilityRepository
	AppointmentRepository  contracts.AppointmentRepository
	Location               *time.Location
	Policy                 Policy
	Log                    *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	userRepository contracts.UserRepository,
	availabilityRepository contracts.AvailabilityRepository,
	appointmentRepository contracts.AppointmentRepository,
	location *time.Location,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			UserRepository:         userRepository,
			AvailabilityRepository: availabilityRepository,
			AppointmentRepository:  appointmentRepository,
			Location:               location,
			Policy: Policy{
				SlotDuration:    time.Duration(internalConfig.Booking.SlotDurationInMinutes) * time.Minute,
				MinimumLeadTime: time.Duration(internalConfig.Booking.MinimumLeadTimeInMinutes) * time.Minute,
				NoShowLock:      time.Duration(internalConfig.Booking.NoShowLockInMinutes) * time.Minute,
			},
			Log: logger,
		}
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) GetDoctorAvailability(ctx context.Context, doctorID string, date time.Time, sessionData string) (*responses.DoctorAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.GetDoctorAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date.Format(constvars.DateFormatYYYYMMDD)),
	)

	doctor, err := uc.UserRepository.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}

	local := date.In(uc.Location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.Location)
	nextDay := dayStart.AddDate(0, 0, 1)

	template := map[string][]string{}
	weeklyAvailability, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if weeklyAvailability != nil {
		template = weeklyAvailability.Availability
	}

	doctorAppointments, err := uc.AppointmentRepository.FindActiveInWindow(ctx, doctorID, "", dayStart, nextDay, "")
	if err != nil {
		return nil, err
	}

	// Patient context is optional; when present the caller's own bookings also
	// mark slots unavailable.
	var patientAppointments []models.Appointment
	if sessionData != "" {
		session, err := utils.ParseSessionData(sessionData)
		if err == nil && session.Role == constvars.RoleTypePatient {
			patientAppointments, err = uc.AppointmentRepository.FindActiveInWindow(ctx, "", session.UserID, dayStart, nextDay, "")
			if err != nil {
				return nil, err
			}
		}
	}

	slots := ResolveDaySlots(template, dayStart, uc.Location, uc.Policy.SlotDuration)
	slots = Annotate(slots, doctorAppointments, patientAppointments, time.Now(), uc.Policy)

	response := &responses.DoctorAvailability{
		Doctor: responses.Doctor{
			ID:        doctor.ID.Hex(),
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
		},
		Date:  dayStart.Format(constvars.DateFormatYYYYMMDD),
		Slots: make([]responses.Slot, 0, len(slots)),
	}
	for _, slot := range slots {
		response.Slots = append(response.Slots, responses.Slot{
			Start:     slot.Start,
			End:       slot.End,
			Available: slot.Available,
			Time:      HumanLabel(slot.Start, uc.Location),
		})
	}

	uc.Log.Info("scheduleUsecase.GetDoctorAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response.Slots)),
	)
	return response, nil
}
