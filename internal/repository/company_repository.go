package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"teampulse/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyRepository struct {
	companies *mongo.Collection
	members   *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{
		companies: db.Collection("companies"),
		members:   db.Collection("companyMembers"),
	}
}

// Create inserts the company and enrolls the owner as its first member.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	company.ID = uuid.NewString()
	company.InviteCode = newInviteCode()
	company.CreatedAt = time.Now()

	if _, err := r.companies.InsertOne(ctx, company); err != nil {
		return err
	}

	member := models.CompanyMember{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		UserID:    company.OwnerID,
		Role:      models.RoleOwner,
		CreatedAt: time.Now(),
	}
	_, err := r.members.InsertOne(ctx, member)
	return err
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := r.companies.FindOne(ctx, bson.M{"_id": id}).Decode(&company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByInviteCode(ctx context.Context, code string) (*models.Company, error) {
	var company models.Company
	if err := r.companies.FindOne(ctx, bson.M{"inviteCode": code}).Decode(&company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByNameAndOwner(ctx context.Context, name, ownerID string) (*models.Company, error) {
	var company models.Company
	if err := r.companies.FindOne(ctx, bson.M{"name": name, "ownerId": ownerID}).Decode(&company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindMembership(ctx context.Context, companyID, userID string) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := r.members.FindOne(ctx, bson.M{"companyId": companyID, "userId": userID}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *CompanyRepository) AddMember(ctx context.Context, companyID, userID, role string) (*models.CompanyMember, error) {
	if role == "" {
		role = models.RoleMember
	}
	member := models.CompanyMember{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if _, err := r.members.InsertOne(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *CompanyRepository) ListMembers(ctx context.Context, companyID string) ([]models.CompanyMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := []models.CompanyMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *CompanyRepository) ListForUser(ctx context.Context, userID string) ([]models.CompanyMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	memberships := []models.CompanyMember{}
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func newInviteCode() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
