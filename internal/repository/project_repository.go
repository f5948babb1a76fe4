package repository

import (
	"context"
	"time"

	"teampulse/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectRepository struct {
	projects *mongo.Collection
	members  *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		projects: db.Collection("projects"),
		members:  db.Collection("projectMembers"),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := r.projects.InsertOne(ctx, project)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.projects.Find(ctx, bson.M{"companyId": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id, title, description string) (*models.Project, error) {
	update := bson.M{
		"$set": bson.M{
			"title":       title,
			"description": description,
			"updatedAt":   time.Now(),
		},
	}
	result := r.projects.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var project models.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.members.DeleteMany(ctx, bson.M{"projectId": id}); err != nil {
		return err
	}
	result, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProjectRepository) FindMembership(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.members.FindOne(ctx, bson.M{"projectId": projectID, "userId": userID}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ProjectRepository) FindMemberByID(ctx context.Context, memberID string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.members.FindOne(ctx, bson.M{"_id": memberID}).Decode(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID, role string) (*models.ProjectMember, error) {
	if role == "" {
		role = models.RoleMember
	}
	member := models.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if _, err := r.members.InsertOne(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := []models.ProjectMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *ProjectRepository) SetMemberRole(ctx context.Context, memberID, role string) error {
	update := bson.M{"$set": bson.M{"role": role}}
	result, err := r.members.UpdateOne(ctx, bson.M{"_id": memberID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, memberID string) error {
	result, err := r.members.DeleteOne(ctx, bson.M{"_id": memberID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
