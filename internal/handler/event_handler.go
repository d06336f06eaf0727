package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kidnest/kidnest-backend/internal/middleware"
	"github.com/kidnest/kidnest-backend/internal/response"
	"github.com/kidnest/kidnest-backend/internal/service"
)

// EventHandler handles role-scoped event visibility.
type EventHandler struct {
	identityService *service.IdentityService
	eventService    *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(identityService *service.IdentityService, eventService *service.EventService) *EventHandler {
	return &EventHandler{identityService: identityService, eventService: eventService}
}

// GetEvents godoc
// GET /api/v1/events
// Returns the caller's visible events, grouped per roster entry: one
// entry per child for parents, one per assigned classroom for teachers.
func (h *EventHandler) GetEvents(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.identityService.Resolve(c.Request.Context(), claims.Subject)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	entries, err := h.eventService.VisibleEvents(c.Request.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			// The account has no parent/teacher profile.
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrForbidden):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": entries})
}
