package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/middleware"
	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/response"
	"github.com/kidnest/kidnest-backend/internal/service"
	"github.com/kidnest/kidnest-backend/internal/validator"
)

// UserHandler handles account administration and device token endpoints.
type UserHandler struct {
	userService     *service.UserService
	identityService *service.IdentityService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, identityService *service.IdentityService) *UserHandler {
	return &UserHandler{userService: userService, identityService: identityService}
}

// SetRole godoc
// POST /api/v1/admin/roles
// Changes the role of the target account. Admin only.
func (h *UserHandler) SetRole(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.RequireRole(c.Request.Context(), claims.Subject, model.RoleAdmin); err != nil {
		failRole(c, err, response.ErrAdminOnly)
		return
	}

	var req model.SetRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.userService.SetRole(c.Request.Context(), req.TargetEmail, req.NewRole); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role updated successfully"})
}

// RegisterFCMToken godoc
// POST /api/v1/notifications/token
// Stores the caller's device push token on their account.
func (h *UserHandler) RegisterFCMToken(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.FCMTokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	if err := h.userService.RegisterFCMToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "token registered successfully"})
}

// failRole maps role-gate errors to the proper status code, using the
// given code for the forbidden case.
func failRole(c *gin.Context, err error, forbiddenCode response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, forbiddenCode)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
