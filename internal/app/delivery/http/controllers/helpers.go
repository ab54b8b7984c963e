package controllers

import (
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// requestContext pulls the request ID and session data every authenticated
// handler needs, writing the error response itself when either is absent.
func requestContext(log *zap.Logger, w http.ResponseWriter, r *http.Request, handlerName string) (requestID, sessionData string, ok bool) {
	requestID, ok = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		log.Error(handlerName + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", "", false
	}

	sessionData, ok = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok {
		log.Error(handlerName+" sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingSessionData(nil))
		return "", "", false
	}
	return requestID, sessionData, true
}
