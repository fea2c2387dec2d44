package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

var domainErrors = []errorMapping{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrTaskFieldsRequired, http.StatusBadRequest, apierrors.MsgTaskFieldsRequired},
	{domain.ErrInvalidTaskStatus, http.StatusBadRequest, apierrors.MsgInvalidTaskStatus},
	{domain.ErrInvalidUserPayload, http.StatusBadRequest, apierrors.MsgInvalidUserPayload},
	{domain.ErrInvalidEmail, http.StatusBadRequest, apierrors.MsgInvalidEmail},
	{domain.ErrWeakPassword, http.StatusBadRequest, apierrors.MsgWeakPassword},
	{domain.ErrPasswordTooLong, http.StatusBadRequest, apierrors.MsgPasswordTooLong},
	{domain.ErrUserExists, http.StatusConflict, apierrors.MsgUserExists},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, apierrors.MsgInvalidCredentials},
	{domain.ErrUnauthorized, http.StatusUnauthorized, apierrors.MsgUnauthorized},
}

func abortWithError(c *gin.Context, status int, msgKey string) {
	c.AbortWithStatusJSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

// respondError answers with the status mapped to err. Anything unmapped is
// logged and answered with fallbackKey as a 500.
func respondError(c *gin.Context, err error, fallbackKey string, logMsg string, fields ...zap.Field) {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			abortWithError(c, m.status, m.msgKey)
			return
		}
	}

	zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	abortWithError(c, http.StatusInternalServerError, fallbackKey)
}

// currentUserID is only called on routes mounted behind middleware.Authenticate.
func currentUserID(c *gin.Context) (string, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.ID == "" {
		abortWithError(c, http.StatusUnauthorized, apierrors.MsgMissingToken)
		return "", false
	}
	return user.ID, true
}
