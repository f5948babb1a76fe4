package handlers

import (
	"errors"
	"net/http"

	"teampulse/internal/models"
	"teampulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskHandler struct {
	taskRepo  *repository.TaskRepository
	sanitizer *bluemonday.Policy
}

func NewTaskHandler(taskRepo *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{
		taskRepo:  taskRepo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create inserts a new task. Title and description are sanitized since
// they round-trip into rendered HTML on the frontend.
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := &models.Task{
		Title:       h.sanitizer.Sanitize(req.Title),
		Description: h.sanitizer.Sanitize(req.Description),
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	}
	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		log.Error().Err(err).Msg("Error creating task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// List returns a project's unarchived tasks, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return
	}

	tasks, err := h.taskRepo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// SetCompleted toggles a task's completion flag.
func (h *TaskHandler) SetCompleted(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskRepo.SetCompleted(c.Request.Context(), req.TaskID, req.Completed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updatedTask": task})
}

// Delete removes a task outright, or archives it when requested so it
// stays visible to analytics.
func (h *TaskHandler) Delete(c *gin.Context) {
	var req models.DeleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if req.Archive {
		task, err := h.taskRepo.Archive(ctx, req.TaskID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete or archive task"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"archivedTask": task})
		return
	}

	if err := h.taskRepo.Delete(ctx, req.TaskID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete or archive task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
