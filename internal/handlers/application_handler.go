package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/middleware"
	"github.com/justsurfingit/job-application-tracker/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	// LLM is nil when posting extraction is not configured.
	LLM *services.LLMService
}

func NewApplicationHandler(apps *services.ApplicationService, llm *services.LLMService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, LLM: llm}
}

// List is GET /applications. status, category and sort narrow and order the
// caller's applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var query dtos.ApplicationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	opts, err := services.ParseViewOptions(query)
	if err != nil {
		respondError(c, err)
		return
	}

	apps, err := h.Applications.List(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), userID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := applicationID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	app, err := h.Applications.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := applicationID(c)
	if !ok {
		return
	}

	if err := h.Applications.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWithoutID answers DELETE /applications.
func (h *ApplicationHandler) DeleteWithoutID(c *gin.Context) {
	respondError(c, apperror.Validation("Application id is required."))
}

// Extract is POST /applications/extract. It returns a draft built from a
// pasted job posting; nothing is stored.
func (h *ApplicationHandler) Extract(c *gin.Context) {
	if h.LLM == nil {
		respondError(c, apperror.Unavailable("Posting extraction is not configured."))
		return
	}

	var req dtos.PostingExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.LLM.ExtractApplicationDraft(c.Request.Context(), req.RawHTML, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperror.Unauthorized("Token not provided"))
	}
	return userID, ok
}

// applicationID parses :id. A malformed id cannot belong to the caller, so it
// is reported the same way as a missing application.
func applicationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, services.ErrApplicationNotFound)
		return uuid.Nil, false
	}
	return id, true
}
