package controllers

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
	Location        *time.Location
}

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase, location *time.Location) *ScheduleController {
	return &ScheduleController{
		Log:             logger,
		ScheduleUsecase: scheduleUsecase,
		Location:        location,
	}
}

func (ctrl *ScheduleController) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("ScheduleController.GetDoctorAvailability requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorID")
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "doctorID"))
		return
	}

	date, err := utils.ParseDateParam(r, "date", ctrl.Location)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Session data is optional here: anonymous callers see the doctor's
	// availability, logged-in patients additionally see their own bookings
	// reflected as unavailable.
	sessionData, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	ctrl.Log.Info("ScheduleController.GetDoctorAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date.Format(constvars.DateFormatYYYYMMDD)))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.GetDoctorAvailability(ctx, doctorID, date, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in ScheduleUsecase.GetDoctorAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorAvailabilitySuccessMessage, response)
}
