package handlers

import (
	"errors"
	"net/http"

	"teampulse/internal/middleware"
	"teampulse/internal/models"
	"teampulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyHandler struct {
	companyRepo *repository.CompanyRepository
	userRepo    *repository.UserRepository
}

func NewCompanyHandler(companyRepo *repository.CompanyRepository, userRepo *repository.UserRepository) *CompanyHandler {
	return &CompanyHandler{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// Create registers a new company owned by the caller.
func (h *CompanyHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Company name is required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.companyRepo.FindByNameAndOwner(ctx, req.Name, userID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "A company with this name already exists"})
		return
	}

	company := &models.Company{Name: req.Name, OwnerID: userID}
	if err := h.companyRepo.Create(ctx, company); err != nil {
		log.Error().Err(err).Msg("Failed to create company")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company created successfully",
		"company": models.CompanyView{
			ID:        company.ID,
			Name:      company.Name,
			Role:      models.RoleOwner,
			CreatedAt: company.CreatedAt,
		},
		"inviteCode": company.InviteCode,
	})
}

// Join adds the caller to the company matching the invite code.
func (h *CompanyHandler) Join(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.JoinCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invite code is required"})
		return
	}

	ctx := c.Request.Context()

	company, err := h.companyRepo.FindByInviteCode(ctx, req.InviteCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Invalid invite code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join company"})
		return
	}

	if _, err := h.companyRepo.FindMembership(ctx, company.ID, userID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "You are already a member of this company"})
		return
	}

	if _, err := h.companyRepo.AddMember(ctx, company.ID, userID, models.RoleMember); err != nil {
		log.Error().Err(err).Msg("Failed to add company member")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined company",
		"company": gin.H{"id": company.ID, "name": company.Name},
	})
}

// List returns the caller's companies with their role in each. The
// company owner always reports as OWNER regardless of the stored role.
func (h *CompanyHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	ctx := c.Request.Context()

	memberships, err := h.companyRepo.ListForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch companies"})
		return
	}

	companies := []models.CompanyView{}
	for _, m := range memberships {
		company, err := h.companyRepo.FindByID(ctx, m.CompanyID)
		if err != nil {
			continue
		}
		role := m.Role
		if company.OwnerID == userID {
			role = models.RoleOwner
		}
		companies = append(companies, models.CompanyView{
			ID:        company.ID,
			Name:      company.Name,
			Role:      role,
			CreatedAt: company.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// Members returns the company roster with resolved user details.
func (h *CompanyHandler) Members(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID is required"})
		return
	}

	ctx := c.Request.Context()

	members, err := h.companyRepo.ListMembers(ctx, companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company members"})
		return
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := h.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company members"})
		return
	}

	views := []models.CompanyMemberView{}
	for _, m := range members {
		user := users[m.UserID]
		views = append(views, models.CompanyMemberView{
			ID:   m.ID,
			Role: m.Role,
			User: models.PublicUser{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}

	c.JSON(http.StatusOK, views)
}
