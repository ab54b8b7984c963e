package utils

import (
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// ParseSessionData decodes the session JSON the auth middleware stashed in the
// request context back into a session model.
func ParseSessionData(sessionData string) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, exceptions.ErrInvalidSession(err)
	}
	if session.UserID == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	return &session, nil
}
