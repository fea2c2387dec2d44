package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidUserPayload)
		return
	}

	input, err := validation.BuildRegisterInput(req)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUserPayload, "invalid register payload")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailRegister, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToAuthResponse(result))
}

// Login answers unknown emails and wrong passwords with the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidUserPayload)
		return
	}

	input, err := validation.BuildLoginInput(req)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUserPayload, "invalid login payload")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailLogin, "failed to login user")
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(result))
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailProfile, "failed to load profile", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: mapper.ToUserItem(user)})
}
