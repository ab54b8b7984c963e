package controllers

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log                 *zap.Logger
	DoctorUsecase       contracts.DoctorUsecase
	AvailabilityUsecase contracts.AvailabilityUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, availabilityUsecase contracts.AvailabilityUsecase) *DoctorController {
	return &DoctorController{
		Log:                 logger,
		DoctorUsecase:       doctorUsecase,
		AvailabilityUsecase: availabilityUsecase,
	}
}

func (ctrl *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.ListDoctors requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	specialty := r.URL.Query().Get("specialty")
	ctrl.Log.Info("DoctorController.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, specialty))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ListDoctors(ctx, specialty)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ListDoctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, response)
}

func (ctrl *DoctorController) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.ListSpecialties requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ListSpecialties(ctx)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ListSpecialties",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSpecialtiesSuccessMessage, response)
}

func (ctrl *DoctorController) GetProfile(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "DoctorController.GetProfile")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetProfile(ctx, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.GetProfile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, response)
}

func (ctrl *DoctorController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "DoctorController.UpdateProfile")
	if !ok {
		return
	}

	var request requests.UpdateDoctorProfile
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.DoctorUsecase.UpdateProfile(ctx, sessionData, &request); err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.UpdateProfile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateProfileSuccessMessage, nil)
}

func (ctrl *DoctorController) GetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "DoctorController.GetWeeklyAvailability")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AvailabilityUsecase.GetWeeklyAvailability(ctx, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.GetWeeklyAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWeeklyAvailabilitySuccessMessage, response)
}

func (ctrl *DoctorController) UpdateWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "DoctorController.UpdateWeeklyAvailability")
	if !ok {
		return
	}

	var request requests.UpdateWeeklyAvailability
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := ctrl.AvailabilityUsecase.UpdateWeeklyAvailability(ctx, sessionData, &request)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.UpdateWeeklyAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	statusCode := constvars.StatusOK
	if created {
		statusCode = constvars.StatusCreated
	}
	utils.BuildSuccessResponse(w, statusCode, constvars.UpdateWeeklyAvailabilitySuccessMessage, nil)
}
