package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kidnest/kidnest-backend/internal/middleware"
	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/response"
	"github.com/kidnest/kidnest-backend/internal/service"
	"github.com/kidnest/kidnest-backend/internal/validator"
)

// NotificationHandler handles push dispatch endpoints.
type NotificationHandler struct {
	identityService     *service.IdentityService
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(identityService *service.IdentityService, notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{identityService: identityService, notificationService: notificationService}
}

// SendNotification godoc
// POST /api/v1/admin/notifications/send
// Pushes a title and body to one device token. Admin only; best-effort.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.RequireRole(c.Request.Context(), claims.Subject, model.RoleAdmin); err != nil {
		failRole(c, err, response.ErrAdminOnly)
		return
	}

	var req model.SendNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.notificationService.Send(c.Request.Context(), req.Token, req.Title, req.Body); err != nil {
		if errors.Is(err, service.ErrPushNotConfigured) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrNotificationFailed)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrNotificationFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notification sent"})
}
