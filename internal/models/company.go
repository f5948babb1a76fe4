package models

import "time"

// Membership roles, shared by company and project membership. A company
// owner reports as OWNER regardless of the stored member role.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Company struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	OwnerID    string    `json:"ownerId" bson:"ownerId"`
	InviteCode string    `json:"inviteCode" bson:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type CompanyMember struct {
	ID        string    `json:"id" bson:"_id"`
	CompanyID string    `json:"companyId" bson:"companyId"`
	UserID    string    `json:"userId" bson:"userId"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinCompanyRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

// CompanyView is a company decorated with the requesting user's role.
type CompanyView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompanyMemberView joins a membership row with the user's public fields.
type CompanyMemberView struct {
	ID   string     `json:"id"`
	Role string     `json:"role"`
	User PublicUser `json:"user"`
}

// PublicUser is the shareable subset of a user record.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
