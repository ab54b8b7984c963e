package availability

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	Log                    *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once

	timeOfDayRegex = regexp.MustCompile(constvars.RegexTimeHHMM)
)

func NewAvailabilityUsecase(availabilityRepository contracts.AvailabilityRepository, logger *zap.Logger) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		availabilityUsecaseInstance = &availabilityUsecase{
			AvailabilityRepository: availabilityRepository,
			Log:                    logger,
		}
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) GetWeeklyAvailability(ctx context.Context, sessionData string) (*responses.WeeklyAvailability, error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	response := &responses.WeeklyAvailability{
		DoctorID:     session.UserID,
		Availability: emptyTemplate(),
	}

	availability, err := uc.AvailabilityRepository.FindByDoctorID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if availability != nil {
		for weekday, times := range availability.Availability {
			response.Availability[weekday] = times
		}
	}
	return response, nil
}

func (uc *availabilityUsecase) UpdateWeeklyAvailability(ctx context.Context, sessionData string, request *requests.UpdateWeeklyAvailability) (created bool, err error) {
	session, err := utils.ParseSessionData(sessionData)
	if err != nil {
		return false, err
	}

	if err := validateTemplate(request.Availability); err != nil {
		return false, err
	}

	created, err = uc.AvailabilityRepository.Upsert(ctx, &models.WeeklyAvailability{
		DoctorID:     session.UserID,
		Availability: request.Availability,
	})
	if err != nil {
		return false, err
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.UpdateWeeklyAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.UserID),
		zap.Bool("created", created),
	)
	return created, nil
}

// validateTemplate enforces the template shape: exactly the seven weekday
// keys, each holding "HH:MM" strings. Failures name the offending weekday.
func validateTemplate(template map[string][]string) error {
	if len(template) == 0 {
		return exceptions.ErrInvalidRequestPayload(nil, constvars.ErrClientAvailabilityRequired)
	}
	if len(template) != len(constvars.WeekdayKeys) {
		return exceptions.ErrInvalidRequestPayload(nil, constvars.ErrClientAvailabilityWeekdays)
	}
	for _, weekday := range constvars.WeekdayKeys {
		times, ok := template[weekday]
		if !ok {
			return exceptions.ErrInvalidRequestPayload(nil, constvars.ErrClientAvailabilityWeekdays)
		}
		for _, timeOfDay := range times {
			if !timeOfDayRegex.MatchString(timeOfDay) {
				return exceptions.ErrInvalidRequestPayload(nil, fmt.Sprintf(constvars.ErrClientAvailabilityBadTimeFormat, weekday))
			}
		}
	}
	return nil
}

func emptyTemplate() map[string][]string {
	template := make(map[string][]string, len(constvars.WeekdayKeys))
	for _, weekday := range constvars.WeekdayKeys {
		template[weekday] = []string{}
	}
	return template
}
