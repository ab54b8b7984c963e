package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/schedule"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	UserRepository         contracts.UserRepository
	AvailabilityRepository contracts.AvailabilityRepository
	LockerService          contracts.LockerService
	Location               *time.Location
	Policy                 schedule.Policy
	SlotLockTimeout        time.Duration
	Log                    *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	availabilityRepository contracts.AvailabilityRepository,
	lockerService contracts.LockerService,
	location *time.Location,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository:  appointmentRepository,
			UserRepository:         userRepository,
			AvailabilityRepository: availabilityRepository,
			LockerService:          lockerService,
			Location:               location,
			Policy: schedule.Policy{
				SlotDuration:    time.Duration(internalConfig.Booking.SlotDurationInMinutes) * time.Minute,
				MinimumLeadTime: time.Duration(internalConfig.Booking.MinimumLeadTimeInMinutes) * time.Minute,
				NoShowLock:      time.Duration(internalConfig.Booking.NoShowLockInMinutes) * time.Minute,
			},
			SlotLockTimeout: time.Duration(internalConfig.Booking.SlotLockTimeoutInSeconds) * time.Second,
			Log:             logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, sessionData string, filter *requests.AppointmentListFilter, pagination *requests.Pagination) ([]responses.PatientAppointment, int, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, 0, err
	}

	appointments, total, err := uc.AppointmentRepository.FindByPatient(ctx, session.UserID, filter, pagination)
	if err != nil {
		return nil, 0, err
	}

	doctors, err := uc.doctorsByID(ctx, appointments)
	if err != nil {
		return nil, 0, err
	}

	items := make([]responses.PatientAppointment, 0, len(appointments))
	for _, appointment := range appointments {
		item := responses.PatientAppointment{Appointment: toAppointmentResponse(&appointment)}
		if doctor, ok := doctors[appointment.DoctorID]; ok {
			item.DoctorName = doctor.Name
			item.DoctorSpecialty = doctor.Specialty
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (uc *appointmentUsecase) Create(ctx context.Context, sessionData string, request *requests.CreateAppointment) (*responses.Appointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.UserRepository.FindDoctorByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}

	if err := uc.validateSlotRequest(ctx, request.DoctorID, request.StartDateTime, request.EndDateTime); err != nil {
		return nil, err
	}

	unlock, err := uc.lockSlot(ctx, request.DoctorID, request.StartDateTime)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.checkConflicts(ctx, request.DoctorID, session.UserID, request.StartDateTime, request.EndDateTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID:     session.UserID,
		DoctorID:      request.DoctorID,
		StartDateTime: request.StartDateTime,
		EndDateTime:   request.EndDateTime,
		Reason:        request.Reason,
		Status:        constvars.AppointmentStatusUpcoming,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	appointment, err = uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		return nil, err
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID),
	)

	response := toAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointment) (*responses.Appointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findOwnedByPatient(ctx, appointmentID, session.UserID)
	if err != nil {
		return nil, err
	}
	if appointment.IsTerminal() {
		return nil, exceptions.ErrAppointmentBadState(nil, constvars.ErrClientOnlyUpcomingReschedulable)
	}

	newStart := appointment.StartDateTime
	newEnd := appointment.EndDateTime
	if request.StartDateTime != nil {
		newStart = *request.StartDateTime
	}
	if request.EndDateTime != nil {
		newEnd = *request.EndDateTime
	}

	timesChanged := !newStart.Equal(appointment.StartDateTime) || !newEnd.Equal(appointment.EndDateTime)
	if timesChanged {
		if err := uc.validateSlotRequest(ctx, appointment.DoctorID, newStart, newEnd); err != nil {
			return nil, err
		}

		unlock, err := uc.lockSlot(ctx, appointment.DoctorID, newStart)
		if err != nil {
			return nil, err
		}
		defer unlock()

		if err := uc.checkConflicts(ctx, appointment.DoctorID, session.UserID, newStart, newEnd, appointment.ID.Hex()); err != nil {
			return nil, err
		}
	}

	appointment.StartDateTime = newStart
	appointment.EndDateTime = newEnd
	if request.Reason != nil {
		appointment.Reason = *request.Reason
	}
	if err := uc.AppointmentRepository.Update(ctx, appointment); err != nil {
		return nil, err
	}

	response := toAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, sessionData, appointmentID string) error {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return err
	}

	appointment, err := uc.findOwnedByPatient(ctx, appointmentID, session.UserID)
	if err != nil {
		return err
	}
	return uc.cancel(ctx, appointment)
}

func (uc *appointmentUsecase) FindCurrentForDoctor(ctx context.Context, sessionData string) (*responses.DoctorAppointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindCurrentForDoctor(ctx, session.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNoCurrentAppointment(nil)
	}

	item, err := uc.toDoctorAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *appointmentUsecase) FindUpcomingForDoctor(ctx context.Context, sessionData string) ([]responses.DoctorAppointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}
	appointments, err := uc.AppointmentRepository.FindUpcomingForDoctor(ctx, session.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.toDoctorAppointments(ctx, appointments)
}

func (uc *appointmentUsecase) FindPastForDoctor(ctx context.Context, sessionData string) ([]responses.DoctorAppointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}
	appointments, err := uc.AppointmentRepository.FindPastForDoctor(ctx, session.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.toDoctorAppointments(ctx, appointments)
}

func (uc *appointmentUsecase) MarkNoShow(ctx context.Context, sessionData, appointmentID string) error {
	appointment, err := uc.findOwnedByDoctor(ctx, sessionData, appointmentID)
	if err != nil {
		return err
	}
	if appointment.IsTerminal() {
		return exceptions.ErrAppointmentBadState(nil, constvars.ErrClientOnlyUpcomingMarkable)
	}

	now := time.Now()
	appointment.Status = constvars.AppointmentStatusNoShow
	appointment.NoShowMarkedAt = &now
	return uc.AppointmentRepository.Update(ctx, appointment)
}

func (uc *appointmentUsecase) MarkCompleted(ctx context.Context, sessionData, appointmentID string) error {
	appointment, err := uc.findOwnedByDoctor(ctx, sessionData, appointmentID)
	if err != nil {
		return err
	}
	if appointment.IsTerminal() {
		return exceptions.ErrAppointmentBadState(nil, constvars.ErrClientOnlyUpcomingMarkable)
	}

	appointment.Status = constvars.AppointmentStatusCompleted
	return uc.AppointmentRepository.Update(ctx, appointment)
}

func (uc *appointmentUsecase) CancelByDoctor(ctx context.Context, sessionData, appointmentID string) error {
	appointment, err := uc.findOwnedByDoctor(ctx, sessionData, appointmentID)
	if err != nil {
		return err
	}
	return uc.cancel(ctx, appointment)
}

// validateSlotRequest runs the write-time booking rules shared by create and
// reschedule: exact slot duration, minimum lead time, and membership in the
// doctor's offered template slots.
func (uc *appointmentUsecase) validateSlotRequest(ctx context.Context, doctorID string, start, end time.Time) error {
	if end.Sub(start) != uc.Policy.SlotDuration {
		return exceptions.ErrInvalidAppointmentDuration(nil)
	}
	if !start.After(time.Now().Add(uc.Policy.MinimumLeadTime)) {
		return exceptions.ErrLeadTimeViolation(nil)
	}

	template := map[string][]string{}
	availability, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return err
	}
	if availability != nil {
		template = availability.Availability
	}
	if !schedule.SlotOffered(template, start, end, uc.Location, uc.Policy.SlotDuration) {
		return exceptions.ErrSlotNotOffered(nil)
	}
	return nil
}

// checkConflicts re-applies the overlap predicate at write time against both
// parties' appointments. The doctor's no-show hold counts as a conflict while
// its window is open.
func (uc *appointmentUsecase) checkConflicts(ctx context.Context, doctorID, patientID string, start, end time.Time, excludeID string) error {
	doctorAppointments, err := uc.AppointmentRepository.FindActiveInWindow(ctx, doctorID, "", start, end, excludeID)
	if err != nil {
		return err
	}
	if schedule.HasConflict(doctorAppointments, start, end, excludeID) {
		return exceptions.ErrSlotAlreadyBooked(nil)
	}
	if schedule.NoShowLocked(doctorAppointments, start, end, time.Now(), uc.Policy.NoShowLock) {
		return exceptions.ErrSlotAlreadyBooked(nil)
	}

	patientAppointments, err := uc.AppointmentRepository.FindActiveInWindow(ctx, "", patientID, start, end, excludeID)
	if err != nil {
		return err
	}
	if schedule.HasConflict(patientAppointments, start, end, excludeID) {
		return exceptions.ErrSlotAlreadyBooked(nil)
	}
	return nil
}

// lockSlot takes the short-lived advisory lock covering one doctor slot so two
// requests cannot interleave the conflict check and the insert. The returned
// function releases it.
func (uc *appointmentUsecase) lockSlot(ctx context.Context, doctorID string, start time.Time) (func(), error) {
	lockKey := fmt.Sprintf("%s%s:%d", constvars.RedisSlotLockKeyPrefix, doctorID, start.Unix())
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.SlotLockTimeout)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotLockHeld(nil)
	}
	return func() {
		if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("failed to release slot lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *appointmentUsecase) cancel(ctx context.Context, appointment *models.Appointment) error {
	if appointment.IsTerminal() {
		return exceptions.ErrAppointmentBadState(nil, constvars.ErrClientOnlyUpcomingCancellable)
	}
	appointment.Status = constvars.AppointmentStatusCancelled
	return uc.AppointmentRepository.Update(ctx, appointment)
}

func (uc *appointmentUsecase) findOwnedByPatient(ctx context.Context, appointmentID, patientID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	// Another patient's appointment is indistinguishable from a missing one.
	if appointment == nil || appointment.PatientID != patientID {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) findOwnedByDoctor(ctx context.Context, sessionData, appointmentID string) (*models.Appointment, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != session.UserID {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) doctorsByID(ctx context.Context, appointments []models.Appointment) (map[string]*models.User, error) {
	doctors := map[string]*models.User{}
	for _, appointment := range appointments {
		if _, ok := doctors[appointment.DoctorID]; ok {
			continue
		}
		doctor, err := uc.UserRepository.FindDoctorByID(ctx, appointment.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor != nil {
			doctors[appointment.DoctorID] = doctor
		}
	}
	return doctors, nil
}

func (uc *appointmentUsecase) toDoctorAppointment(ctx context.Context, appointment *models.Appointment) (*responses.DoctorAppointment, error) {
	item := &responses.DoctorAppointment{Appointment: toAppointmentResponse(appointment)}
	patient, err := uc.UserRepository.FindByID(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}
	if patient != nil {
		item.PatientName = patient.Name
	}
	return item, nil
}

func (uc *appointmentUsecase) toDoctorAppointments(ctx context.Context, appointments []models.Appointment) ([]responses.DoctorAppointment, error) {
	patients := map[string]*models.User{}
	items := make([]responses.DoctorAppointment, 0, len(appointments))
	for _, appointment := range appointments {
		patient, ok := patients[appointment.PatientID]
		if !ok {
			var err error
			patient, err = uc.UserRepository.FindByID(ctx, appointment.PatientID)
			if err != nil {
				return nil, err
			}
			patients[appointment.PatientID] = patient
		}

		item := responses.DoctorAppointment{Appointment: toAppointmentResponse(&appointment)}
		if patient != nil {
			item.PatientName = patient.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func toAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:             appointment.ID.Hex(),
		PatientID:      appointment.PatientID,
		DoctorID:       appointment.DoctorID,
		StartDateTime:  appointment.StartDateTime,
		EndDateTime:    appointment.EndDateTime,
		Reason:         appointment.Reason,
		Status:         appointment.Status,
		NoShowMarkedAt: appointment.NoShowMarkedAt,
	}
}
