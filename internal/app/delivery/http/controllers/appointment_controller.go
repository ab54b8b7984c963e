package controllers

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.FindAll")
	if !ok {
		return
	}

	filter, err := utils.BuildAppointmentListFilter(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, total, err := ctrl.AppointmentUsecase.FindAll(ctx, sessionData, filter, pagination)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindAll",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, paginationResponse, items)
}

func (ctrl *AppointmentController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.Create")
	if !ok {
		return
	}

	var request requests.CreateAppointment
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.Create(ctx, sessionData, &request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) Reschedule(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.Reschedule")
	if !ok {
		return
	}

	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentID"))
		return
	}

	var request requests.RescheduleAppointment
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.Reschedule(ctx, sessionData, appointmentID, &request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.Reschedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescheduleAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.Cancel", ctrl.AppointmentUsecase.Cancel, constvars.CancelAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) Current(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.Current")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindCurrentForDoctor(ctx, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindCurrentForDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) Upcoming(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.Upcoming")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindUpcomingForDoctor(ctx, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindUpcomingForDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) Past(w http.ResponseWriter, r *http.Request) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, "AppointmentController.Past")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindPastForDoctor(ctx, sessionData)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindPastForDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.MarkNoShow", ctrl.AppointmentUsecase.MarkNoShow, constvars.MarkNoShowSuccessMessage)
}

func (ctrl *AppointmentController) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.MarkCompleted", ctrl.AppointmentUsecase.MarkCompleted, constvars.MarkCompletedSuccessMessage)
}

func (ctrl *AppointmentController) CancelByDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.CancelByDoctor", ctrl.AppointmentUsecase.CancelByDoctor, constvars.CancelAppointmentSuccessMessage)
}

// transition handles the status-change endpoints that share a shape: an
// appointment ID in the path, a session-scoped usecase call, no request body.
func (ctrl *AppointmentController) transition(
	w http.ResponseWriter,
	r *http.Request,
	handlerName string,
	operation func(ctx context.Context, sessionData, appointmentID string) error,
	successMessage string,
) {
	requestID, sessionData, ok := requestContext(ctrl.Log, w, r, handlerName)
	if !ok {
		return
	}

	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentID"))
		return
	}

	ctrl.Log.Info(fmt.Sprintf("%s called", handlerName),
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := operation(ctx, sessionData, appointmentID); err != nil {
		ctrl.Log.Error(fmt.Sprintf("Error in %s", handlerName),
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}
