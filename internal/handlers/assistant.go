package handlers

import (
	"net/http"

	"teampulse/internal/middleware"
	"teampulse/internal/repository"
	"teampulse/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AssistantHandler struct {
	assistant   *services.AssistantService
	projectRepo *repository.ProjectRepository
}

func NewAssistantHandler(assistant *services.AssistantService, projectRepo *repository.ProjectRepository) *AssistantHandler {
	return &AssistantHandler{
		assistant:   assistant,
		projectRepo: projectRepo,
	}
}

type assistantRequest struct {
	Text      string `json:"text" binding:"required"`
	ProjectID string `json:"projectId" binding:"required"`
}

// Chat runs one assistant turn for a project the caller belongs to.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	ctx := c.Request.Context()

	if _, err := h.projectRepo.FindMembership(ctx, req.ProjectID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	result, err := h.assistant.Handle(ctx, req.ProjectID, req.Text)
	if err != nil {
		log.Error().Err(err).Str("projectId", req.ProjectID).Msg("Assistant request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"response": "I'm sorry, but I encountered an error while processing your request. Please try again.",
			"error":    "Failed to process request",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
