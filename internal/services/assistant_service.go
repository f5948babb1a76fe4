// Package services holds the application services that sit between the
// HTTP handlers and the repositories.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"teampulse/internal/models"
	"teampulse/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/sahilm/fuzzy"
	"github.com/xeipuuv/gojsonschema"
)

// Assistant action kinds. NONE carries no effect and exists so the model
// can answer questions without forcing an action.
const (
	ActionAddMember     = "ADD_MEMBER"
	ActionRemoveMember  = "REMOVE_MEMBER"
	ActionChangeRole    = "CHANGE_ROLE"
	ActionAddTask       = "ADD_TASK"
	ActionAssignTask    = "ASSIGN_TASK"
	ActionMarkCompleted = "MARK_COMPLETED"
	ActionDeleteTask    = "DELETE_TASK"
	ActionNone          = "NONE"
)

// HRAction is the tagged union the model emits; which fields matter
// depends on Action.
type HRAction struct {
	Action          string `json:"action"`
	UserID          string `json:"userId,omitempty"`
	UserName        string `json:"userName,omitempty"`
	UserEmail       string `json:"userEmail,omitempty"`
	Role            string `json:"role,omitempty"`
	TaskID          string `json:"taskId,omitempty"`
	TaskTitle       string `json:"taskTitle,omitempty"`
	TaskDescription string `json:"taskDescription,omitempty"`
	DueDate         string `json:"dueDate,omitempty"`
	AssigneeID      string `json:"assigneeId,omitempty"`
	Completed       *bool  `json:"completed,omitempty"`
	DeleteAllTasks  bool   `json:"deleteAllTasks,omitempty"`
}

// actionsSchema validates the JSON block extracted from the model
// response before anything is applied.
const actionsSchema = `{
	"type": "object",
	"required": ["actions"],
	"properties": {
		"actions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["action"],
				"properties": {
					"action": {
						"type": "string",
						"enum": ["ADD_MEMBER", "REMOVE_MEMBER", "CHANGE_ROLE", "ADD_TASK", "ASSIGN_TASK", "MARK_COMPLETED", "DELETE_TASK", "NONE"]
					},
					"userId": {"type": "string"},
					"userName": {"type": "string"},
					"userEmail": {"type": "string"},
					"role": {"type": "string", "enum": ["OWNER", "ADMIN", "MEMBER"]},
					"taskId": {"type": "string"},
					"taskTitle": {"type": "string"},
					"taskDescription": {"type": "string"},
					"dueDate": {"type": "string"},
					"assigneeId": {"type": "string"},
					"completed": {"type": "boolean"},
					"deleteAllTasks": {"type": "boolean"}
				}
			}
		}
	}
}`

var jsonBlockRe = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")

// TextGenerator abstracts the model call so tests can stub it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AssistantService struct {
	gemini    TextGenerator
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	users     *repository.UserRepository
	companies *repository.CompanyRepository
	schema    *gojsonschema.Schema
}

func NewAssistantService(gemini TextGenerator, projects *repository.ProjectRepository, tasks *repository.TaskRepository, users *repository.UserRepository, companies *repository.CompanyRepository) (*AssistantService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(actionsSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling action schema: %w", err)
	}
	return &AssistantService{
		gemini:    gemini,
		projects:  projects,
		tasks:     tasks,
		users:     users,
		companies: companies,
		schema:    schema,
	}, nil
}

// companyName resolves the owning company's name for the prompt; an
// empty string is fine when the lookup fails.
func (s *AssistantService) companyName(ctx context.Context, companyID string) string {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return ""
	}
	return company.Name
}

// AssistantResult is what the handler returns to the frontend.
type AssistantResult struct {
	Response       string `json:"response"`
	ProjectUpdated bool   `json:"projectUpdated"`
}

// memberContext is the member view embedded in the model prompt.
type memberContext struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type taskContext struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate"`
	AssignedTo  string  `json:"assignedTo,omitempty"`
}

type projectContext struct {
	ProjectID          string          `json:"projectId"`
	ProjectTitle       string          `json:"projectTitle"`
	ProjectDescription string          `json:"projectDescription"`
	CompanyName        string          `json:"companyName"`
	Members            []memberContext `json:"members"`
	Tasks              []taskContext   `json:"tasks"`
}

// Handle runs one assistant turn: build the project context, ask the
// model, validate any emitted actions and apply them.
func (s *AssistantService) Handle(ctx context.Context, projectID, text string) (*AssistantResult, error) {
	pctx, err := s.buildContext(ctx, projectID)
	if err != nil {
		return nil, err
	}

	response, err := s.gemini.Generate(ctx, buildPrompt(pctx, text))
	if err != nil {
		return nil, err
	}

	actions, conversational := s.extractActions(response)

	updated := false
	for _, action := range actions {
		applied, err := s.apply(ctx, projectID, pctx.Members, action)
		if err != nil {
			log.Warn().Err(err).Str("action", action.Action).Msg("Assistant action failed")
			continue
		}
		updated = updated || applied
	}

	return &AssistantResult{Response: conversational, ProjectUpdated: updated}, nil
}

func (s *AssistantService) buildContext(ctx context.Context, projectID string) (*projectContext, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	members, err := s.projects.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	pctx := &projectContext{
		ProjectID:          project.ID,
		ProjectTitle:       project.Title,
		ProjectDescription: project.Description,
		CompanyName:        s.companyName(ctx, project.CompanyID),
		Members:            make([]memberContext, 0, len(members)),
		Tasks:              make([]taskContext, 0, len(tasks)),
	}

	for _, m := range members {
		user := users[m.UserID]
		pctx.Members = append(pctx.Members, memberContext{
			ID:     m.ID,
			UserID: m.UserID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   m.Role,
		})
	}

	for _, t := range tasks {
		var due *string
		if t.DueDate != nil {
			formatted := t.DueDate.Format(time.RFC3339)
			due = &formatted
		}
		pctx.Tasks = append(pctx.Tasks, taskContext{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			DueDate:     due,
			AssignedTo:  t.AssignedTo,
		})
	}

	return pctx, nil
}

func buildPrompt(pctx *projectContext, text string) string {
	contextJSON, _ := json.MarshalIndent(pctx, "", "  ")

	return fmt.Sprintf(`You are an HR assistant for a project management system. Your job is to help manage team members and tasks for projects.

Current project context:
%s

The user said: %q

Respond naturally as an HR assistant and determine if any actions need to be taken based on the user's request.
If actions are needed, include a JSON block in your response with the following format:

{
  "actions": [
    {
      "action": "ADD_MEMBER" | "REMOVE_MEMBER" | "CHANGE_ROLE" | "ADD_TASK" | "ASSIGN_TASK" | "MARK_COMPLETED" | "DELETE_TASK" | "NONE",
      "userId": "user-id",
      "userName": "User Name",
      "userEmail": "user@email.com",
      "role": "OWNER" | "ADMIN" | "MEMBER",
      "taskId": "task-id",
      "taskTitle": "Task Title",
      "taskDescription": "Task Description",
      "dueDate": "2024-04-30",
      "assigneeId": "member-id",
      "completed": true | false,
      "deleteAllTasks": true | false
    }
  ]
}

Don't mention this JSON in your conversational response. Only include the JSON block after your natural response.`, contextJSON, text)
}

// extractActions pulls the fenced JSON block out of the response,
// validates it against the action schema and strips it from the
// conversational text. A malformed block is logged and ignored.
func (s *AssistantService) extractActions(response string) ([]HRAction, string) {
	match := jsonBlockRe.FindStringSubmatch(response)
	if match == nil {
		return nil, strings.TrimSpace(response)
	}

	conversational := strings.TrimSpace(strings.Replace(response, match[0], "", 1))

	result, err := s.schema.Validate(gojsonschema.NewStringLoader(match[1]))
	if err != nil || !result.Valid() {
		log.Warn().Err(err).Msg("Assistant emitted an invalid action block")
		return nil, conversational
	}

	var payload struct {
		Actions []HRAction `json:"actions"`
	}
	if err := json.Unmarshal([]byte(match[1]), &payload); err != nil {
		log.Warn().Err(err).Msg("Assistant action block failed to parse")
		return nil, conversational
	}
	return payload.Actions, conversational
}

// resolveUserID returns the action's user ID, falling back to a fuzzy
// match of the user name against the project roster.
func resolveUserID(action HRAction, members []memberContext) string {
	if action.UserID != "" {
		return action.UserID
	}
	if action.UserName == "" {
		return ""
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	matches := fuzzy.Find(action.UserName, names)
	if len(matches) == 0 {
		return ""
	}
	return members[matches[0].Index].UserID
}

// resolveAssigneeID is resolveUserID for the member (not user) ID that
// task assignment uses.
func resolveAssigneeID(action HRAction, members []memberContext) string {
	if action.AssigneeID != "" {
		return action.AssigneeID
	}
	if action.UserName == "" {
		return ""
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	matches := fuzzy.Find(action.UserName, names)
	if len(matches) == 0 {
		return ""
	}
	return members[matches[0].Index].ID
}

func (s *AssistantService) apply(ctx context.Context, projectID string, members []memberContext, action HRAction) (bool, error) {
	switch action.Action {
	case ActionAddMember:
		return s.applyAddMember(ctx, projectID, action)

	case ActionRemoveMember:
		userID := resolveUserID(action, members)
		if userID == "" {
			return false, fmt.Errorf("no user resolved for removal")
		}
		member, err := s.projects.FindMembership(ctx, projectID, userID)
		if err != nil {
			return false, err
		}
		if err := s.tasks.Unassign(ctx, member.ID); err != nil {
			return false, err
		}
		return true, s.projects.RemoveMember(ctx, member.ID)

	case ActionChangeRole:
		userID := resolveUserID(action, members)
		if userID == "" || action.Role == "" {
			return false, fmt.Errorf("user and role required for role change")
		}
		member, err := s.projects.FindMembership(ctx, projectID, userID)
		if err != nil {
			return false, err
		}
		return true, s.projects.SetMemberRole(ctx, member.ID, action.Role)

	case ActionAddTask:
		if action.TaskTitle == "" {
			return false, fmt.Errorf("task title required")
		}
		task := &models.Task{
			Title:       action.TaskTitle,
			Description: action.TaskDescription,
			ProjectID:   projectID,
			AssignedTo:  resolveAssigneeID(action, members),
		}
		if action.DueDate != "" {
			if due, err := time.Parse("2006-01-02", action.DueDate); err == nil {
				task.DueDate = &due
			}
		}
		return true, s.tasks.Create(ctx, task)

	case ActionAssignTask:
		assigneeID := resolveAssigneeID(action, members)
		if action.TaskID == "" || assigneeID == "" {
			return false, fmt.Errorf("task and assignee required for assignment")
		}
		if _, err := s.projects.FindMemberByID(ctx, assigneeID); err != nil {
			return false, fmt.Errorf("assignee not found: %w", err)
		}
		return true, s.tasks.Assign(ctx, action.TaskID, assigneeID)

	case ActionMarkCompleted:
		if action.TaskID == "" || action.Completed == nil {
			return false, fmt.Errorf("task and completion flag required")
		}
		_, err := s.tasks.SetCompleted(ctx, action.TaskID, *action.Completed)
		return err == nil, err

	case ActionDeleteTask:
		if action.DeleteAllTasks {
			return true, s.tasks.DeleteByProject(ctx, projectID)
		}
		if action.TaskID == "" {
			return false, fmt.Errorf("task ID required for deletion")
		}
		return true, s.tasks.Delete(ctx, action.TaskID)

	case ActionNone:
		return false, nil
	}
	return false, fmt.Errorf("unknown action %q", action.Action)
}

// applyAddMember enrolls an existing user, or registers a new one by
// email first.
func (s *AssistantService) applyAddMember(ctx context.Context, projectID string, action HRAction) (bool, error) {
	userID := action.UserID
	if userID == "" {
		if action.UserName == "" || action.UserEmail == "" {
			return false, fmt.Errorf("user name and email required for new members")
		}
		user, err := s.users.FindByEmail(ctx, action.UserEmail)
		if err != nil {
			user = &models.User{Name: action.UserName, Email: action.UserEmail}
			if err := s.users.Create(ctx, user); err != nil {
				return false, err
			}
		}
		userID = user.ID
	}

	if _, err := s.projects.FindMembership(ctx, projectID, userID); err == nil {
		return false, fmt.Errorf("user already a project member")
	}

	_, err := s.projects.AddMember(ctx, projectID, userID, action.Role)
	return err == nil, err
}
