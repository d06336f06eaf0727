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

// FeedbackHandler handles attendance opt-out (event feedback) endpoints.
type FeedbackHandler struct {
	identityService *service.IdentityService
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(identityService *service.IdentityService, feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{identityService: identityService, feedbackService: feedbackService}
}

// PostFeedback godoc
// POST /api/v1/events/:event_id/feedback
// Records a child's opt-out for an event. Parents (and admins) only.
// Posting already-recorded feedback succeeds without a duplicate.
func (h *FeedbackHandler) PostFeedback(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.RequireRole(c.Request.Context(), claims.Subject, model.RoleParent, model.RoleAdmin); err != nil {
		failRole(c, err, response.ErrForbidden)
		return
	}

	eventID := c.Param("event_id")
	if !primitive.IsValidObjectID(eventID) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.FeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	status, err := h.feedbackService.PostFeedback(c.Request.Context(), eventID, req.ChildID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": status})
}

// GetFeedback godoc
// GET /api/v1/events/:event_id/feedback/:child_id
// Reports whether the child is currently opted out of the event.
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.Resolve(c.Request.Context(), claims.Subject); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	eventID := c.Param("event_id")
	childID := c.Param("child_id")
	if !primitive.IsValidObjectID(eventID) || !primitive.IsValidObjectID(childID) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	status, err := h.feedbackService.GetFeedback(c.Request.Context(), eventID, childID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": status})
}

// WithdrawFeedback godoc
// DELETE /api/v1/events/:event_id/feedback
// Removes a child's opt-out for an event. Parents (and admins) only.
func (h *FeedbackHandler) WithdrawFeedback(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.RequireRole(c.Request.Context(), claims.Subject, model.RoleParent, model.RoleAdmin); err != nil {
		failRole(c, err, response.ErrForbidden)
		return
	}

	eventID := c.Param("event_id")
	if !primitive.IsValidObjectID(eventID) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.FeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	status, err := h.feedbackService.WithdrawFeedback(c.Request.Context(), eventID, req.ChildID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrInvalidState):
			response.Fail(c, http.StatusConflict, response.ErrNoFeedback)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": status})
}

// ReconcileEvent godoc
// POST /api/v1/admin/events/:event_id/feedback/reconcile
// Rewrites the child side of the event's feedback pairs to match the
// event's opt-out set. Admin only.
func (h *FeedbackHandler) ReconcileEvent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if _, err := h.identityService.RequireRole(c.Request.Context(), claims.Subject, model.RoleAdmin); err != nil {
		failRole(c, err, response.ErrAdminOnly)
		return
	}

	eventID := c.Param("event_id")
	if !primitive.IsValidObjectID(eventID) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.feedbackService.ReconcileEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reconciliation": result})
}
