package models

import "time"

type Task struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Completed   bool       `json:"completed" bson:"completed"`
	Archived    bool       `json:"archived" bson:"archived"`
	DueDate     *time.Time `json:"dueDate" bson:"dueDate,omitempty"`
	ProjectID   string     `json:"projectId" bson:"projectId"`
	AssignedTo  string     `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"` // project member ID
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   string     `json:"projectId" binding:"required"`
	AssignedTo  string     `json:"assignedTo"`
}

type UpdateTaskRequest struct {
	TaskID    string `json:"taskId" binding:"required"`
	Completed bool   `json:"completed"`
}

type DeleteTaskRequest struct {
	TaskID  string `json:"taskId" binding:"required"`
	Archive bool   `json:"archive"`
}
