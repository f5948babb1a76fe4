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

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection("tasks"),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, task)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject returns the project's unarchived tasks, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	filter := bson.M{"projectId": projectID, "archived": false}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAllByProject returns every task including archived ones; analytics
// needs the full history.
func (r *TaskRepository) ListAllByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, taskID string, completed bool) (*models.Task, error) {
	update := bson.M{
		"$set": bson.M{
			"completed": completed,
			"updatedAt": time.Now(),
		},
	}
	result := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var task models.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Archive(ctx context.Context, taskID string) (*models.Task, error) {
	update := bson.M{
		"$set": bson.M{
			"archived":  true,
			"updatedAt": time.Now(),
		},
	}
	result := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var task models.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Assign sets the assignee on a task.
func (r *TaskRepository) Assign(ctx context.Context, taskID, memberID string) error {
	update := bson.M{
		"$set": bson.M{
			"assignedTo": memberID,
			"updatedAt":  time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByProject removes every task of a project.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"projectId": projectID})
	return err
}

// Unassign clears the assignee on every task held by a departing member.
func (r *TaskRepository) Unassign(ctx context.Context, memberID string) error {
	update := bson.M{
		"$unset": bson.M{"assignedTo": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"assignedTo": memberID}, update)
	return err
}
