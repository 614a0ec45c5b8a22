package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/response"
	"github.com/emprendevoz/emprende-api/pkg/validation"
)

type statusRule struct {
	err    error
	status int
}

// Order matters only for wrapped errors matching several rules.
var statusRules = []statusRule{
	{app.ErrInvalidInput, http.StatusBadRequest},
	{app.ErrInvalidCredentials, http.StatusUnauthorized},
	{repo.ErrSessionNotFound, http.StatusUnauthorized},
	{app.ErrForbidden, http.StatusForbidden},
	{app.ErrProfileNotFound, http.StatusNotFound},
	{app.ErrNotFound, http.StatusNotFound},
	{app.ErrNoMentor, http.StatusNotFound},
	{repo.ErrNotFound, http.StatusNotFound},
	{app.ErrEmailTaken, http.StatusConflict},
	{app.ErrLocked, http.StatusConflict},
	{app.ErrWalletRequired, http.StatusConflict},
	{app.ErrModuleIncomplete, http.StatusConflict},
	{repo.ErrConflict, http.StatusConflict},
	{repo.ErrSlotUnavailable, http.StatusConflict},
	{repo.ErrSlotFull, http.StatusConflict},
	{repo.ErrAlreadyBooked, http.StatusConflict},
	{repo.ErrEventFull, http.StatusConflict},
	{repo.ErrAlreadyRegistered, http.StatusConflict},
	{app.ErrStorageDisabled, http.StatusServiceUnavailable},
}

// StatusFor maps a service error to its HTTP status; unknown errors are 500.
func StatusFor(err error) int {
	for _, r := range statusRules {
		if errors.Is(err, r.err) {
			return r.status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err with its mapped status. Internal errors are logged
// and hidden from the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
		response.Error[any](c, status, "internal server error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// bodyUser resolves an optional user_id field against the session user.
func bodyUser(c *gin.Context, userID string) (string, bool) {
	self := c.GetString("userID")
	if userID == "" || userID == self {
		return self, true
	}
	response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	return "", false
}
