package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type AvailabilityRepository interface {
	FindByDoctorID(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error)
	Upsert(ctx context.Context, availability *models.WeeklyAvailability) (created bool, err error)
}

type AvailabilityUsecase interface {
	GetWeeklyAvailability(ctx context.Context, sessionData string) (*responses.WeeklyAvailability, error)
	UpdateWeeklyAvailability(ctx context.Context, sessionData string, request *requests.UpdateWeeklyAvailability) (created bool, err error)
}
