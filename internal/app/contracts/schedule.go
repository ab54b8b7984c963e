package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/responses"
	"time"
)

type ScheduleUsecase interface {
	// GetDoctorAvailability computes the annotated slot list for one doctor and
	// one calendar date. sessionData may be empty; when present the caller's own
	// appointments also mark slots unavailable.
	GetDoctorAvailability(ctx context.Context, doctorID string, date time.Time, sessionData string) (*responses.DoctorAvailability, error)
}
