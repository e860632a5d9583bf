package handler

import (
	"fmt"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	svc *service.Service
}

func NewSubmissionHandler(svc *service.Service) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// List returns every valid submission, newest first
func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.svc.ListSubmissions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, submissions)
}

// Create stores a contact form submission
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req model.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondServiceError(c, fmt.Errorf("parse request body: %w", err))
		return
	}

	submission, err := h.svc.CreateSubmission(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, submission)
}

// Delete removes a submission. Unknown ids succeed.
func (h *SubmissionHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteSubmission(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c)
}
