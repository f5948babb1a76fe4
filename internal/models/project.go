package models

import "time"

type Project struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CompanyID   string    `json:"companyId" bson:"companyId"`
	ProjectBlog *string   `json:"projectBlog" bson:"projectBlog,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type ProjectMember struct {
	ID        string    `json:"id" bson:"_id"`
	ProjectID string    `json:"projectId" bson:"projectId"`
	UserID    string    `json:"userId" bson:"userId"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	CompanyID   string  `json:"companyId" binding:"required"`
	ProjectBlog *string `json:"projectBlog"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type AddProjectMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// ProjectMemberView joins a membership row with the user's public fields.
type ProjectMemberView struct {
	ID   string     `json:"id"`
	Role string     `json:"role"`
	User PublicUser `json:"user"`
}
