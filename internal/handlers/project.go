package handlers

import (
	"errors"
	"net/http"

	"teampulse/internal/models"
	"teampulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectHandler struct {
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository
	userRepo    *repository.UserRepository
}

func NewProjectHandler(projectRepo *repository.ProjectRepository, taskRepo *repository.TaskRepository, userRepo *repository.UserRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// Create registers a new project under a company.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		ProjectBlog: req.ProjectBlog,
	}
	if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
		log.Error().Err(err).Msg("Project creation error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// List returns all projects of a company, newest first.
func (h *ProjectHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID is required"})
		return
	}

	projects, err := h.projectRepo.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Update renames a project or rewrites its description.
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID := c.Param("projectId")

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectRepo.Update(c.Request.Context(), projectID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

// Delete removes a project and its memberships.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID := c.Param("projectId")

	if err := h.projectRepo.Delete(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Members returns the project roster with resolved user details.
func (h *ProjectHandler) Members(c *gin.Context) {
	projectID := c.Param("projectId")

	ctx := c.Request.Context()
	members, err := h.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project members"})
		return
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := h.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project members"})
		return
	}

	views := []models.ProjectMemberView{}
	for _, m := range members {
		user := users[m.UserID]
		views = append(views, models.ProjectMemberView{
			ID:   m.ID,
			Role: m.Role,
			User: models.PublicUser{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}

	c.JSON(http.StatusOK, views)
}

// AddMember enrolls a user into the project.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID := c.Param("projectId")

	var req models.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID and User ID are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.projectRepo.FindMembership(ctx, projectID, req.UserID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this project"})
		return
	}

	member, err := h.projectRepo.AddMember(ctx, projectID, req.UserID, req.Role)
	if err != nil {
		log.Error().Err(err).Msg("Add project member error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member to project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Member added to project successfully",
		"projectMember": member,
	})
}

// RemoveMember drops a member from the project. Tasks assigned to the
// member are unassigned first so they stay in the backlog.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	memberID := c.Param("memberId")

	ctx := c.Request.Context()

	member, err := h.projectRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project member not found"})
		return
	}

	if err := h.taskRepo.Unassign(ctx, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member from project"})
		return
	}

	if err := h.projectRepo.RemoveMember(ctx, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member from project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member removed from project successfully",
		"deletedMember": gin.H{
			"id":        member.ID,
			"userId":    member.UserID,
			"projectId": member.ProjectID,
		},
	})
}
