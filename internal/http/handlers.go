// Package http contains the Gin handlers for the flowchart API. The layer is
// deliberately thin: it validates request shape, dispatches to the
// orchestrator, and maps error kinds to status codes.
package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/dotpress/dotpress/internal/flowchart"
	"github.com/dotpress/dotpress/internal/logging"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	service   *flowchart.Service
	outputDir string
	logger    *logging.Logger
}

// NewHandlers creates a new handler set.
func NewHandlers(service *flowchart.Service, outputDir string, logger *logging.Logger) *Handlers {
	return &Handlers{
		service:   service,
		outputDir: outputDir,
		logger:    logger,
	}
}

// CreateRequest is the body for starting a new flowchart session.
type CreateRequest struct {
	UserEmail string `json:"user_email" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

// AddRequest is the body for appending to an existing session.
type AddRequest struct {
	UserEmail string `json:"user_email" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

// LoadTemplateRequest is the body for starting a session from a template.
type LoadTemplateRequest struct {
	UserEmail  string `json:"user_email" binding:"required"`
	TemplateID string `json:"template_id" binding:"required"`
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "dotpress",
	})
}

// Health handles the health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"templates": len(h.service.ListTemplates()),
	})
}

// ListTemplates lists available flowchart templates.
func (h *Handlers) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListTemplates())
}

// Create starts a new flowchart session for a user.
func (h *Handlers) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include 'user_email' and 'prompt'"})
		return
	}

	sessionID, artifact, err := h.service.Create(c.Request.Context(), req.UserEmail, req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"user_email":      req.UserEmail,
		"session_id":      sessionID,
		"message":         "New flowchart PDF created.",
		"output_filename": artifact,
	})
}

// Add appends a step to an existing flowchart session.
func (h *Handlers) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include 'user_email', 'session_id', and 'prompt'"})
		return
	}

	artifact, err := h.service.Append(c.Request.Context(), req.UserEmail, req.SessionID, req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"user_email":      req.UserEmail,
		"session_id":      req.SessionID,
		"message":         "Flowchart PDF updated.",
		"output_filename": artifact,
	})
}

// LoadTemplate starts a session from a pre-authored template.
func (h *Handlers) LoadTemplate(c *gin.Context) {
	var req LoadTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include 'user_email' and 'template_id'"})
		return
	}

	sessionID, artifact, err := h.service.LoadTemplate(c.Request.Context(), req.UserEmail, req.TemplateID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"user_email":      req.UserEmail,
		"session_id":      sessionID,
		"message":         "Template '" + req.TemplateID + "' loaded successfully.",
		"output_filename": artifact,
	})
}

// GetOutputFile serves a generated document by artifact name. The name must
// be a bare filename; anything with path components is rejected before the
// filesystem is touched.
func (h *Handlers) GetOutputFile(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "output file not found"})
		return
	}

	c.File(path)
}

// writeError maps an error kind to a caller-facing status. Internal detail
// never crosses this boundary.
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, flowchart.ErrSessionNotFound) || errors.Is(err, flowchart.ErrTemplateNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
