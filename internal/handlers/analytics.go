package handlers

import (
	"net/http"
	"time"

	"teampulse/internal/analytics"
	"teampulse/internal/middleware"
	"teampulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AnalyticsHandler struct {
	engine      *analytics.Engine
	snapshots   *repository.SnapshotRepository
	projectRepo *repository.ProjectRepository
}

func NewAnalyticsHandler(engine *analytics.Engine, snapshots *repository.SnapshotRepository, projectRepo *repository.ProjectRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		engine:      engine,
		snapshots:   snapshots,
		projectRepo: projectRepo,
	}
}

// timeRangeDays maps the query parameter onto a window length.
// Unrecognized values fall back to the engine default.
func timeRangeDays(timeRange string) int {
	switch timeRange {
	case "7days":
		return 7
	case "14days":
		return 14
	case "30days":
		return 30
	default:
		return analytics.DefaultWindowDays
	}
}

// Get computes the analytics report for a project. Only project members
// may see it.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	projectID := c.Param("projectId")
	userID := c.GetString(middleware.ContextUserID)

	ctx := c.Request.Context()

	if _, err := h.projectRepo.FindMembership(ctx, projectID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	snapshot, err := h.snapshots.Load(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Str("projectId", projectID).Msg("Failed to load project snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	report, err := h.engine.Compute(snapshot, timeRangeDays(c.Query("timeRange")), time.Now())
	if err != nil {
		log.Error().Err(err).Str("projectId", projectID).Msg("Analytics computation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
