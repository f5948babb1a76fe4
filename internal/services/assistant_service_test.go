package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AssistantService {
	t.Helper()
	svc, err := NewAssistantService(nil, nil, nil, nil, nil)
	require.NoError(t, err)
	return svc
}

func TestExtractActions_FencedBlock(t *testing.T) {
	svc := newTestService(t)

	response := "I'll add that task for you.\n\n```json\n" +
		`{"actions": [{"action": "ADD_TASK", "taskTitle": "Write release notes", "dueDate": "2026-09-01"}]}` +
		"\n```"

	actions, conversational := svc.extractActions(response)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionAddTask, actions[0].Action)
	assert.Equal(t, "Write release notes", actions[0].TaskTitle)
	assert.Equal(t, "2026-09-01", actions[0].DueDate)
	assert.Equal(t, "I'll add that task for you.", conversational)
}

func TestExtractActions_NoBlock(t *testing.T) {
	svc := newTestService(t)

	actions, conversational := svc.extractActions("Your project has 3 open tasks.")
	assert.Empty(t, actions)
	assert.Equal(t, "Your project has 3 open tasks.", conversational)
}

func TestExtractActions_InvalidActionRejected(t *testing.T) {
	svc := newTestService(t)

	response := "Done.\n```json\n{\"actions\": [{\"action\": \"DROP_DATABASE\"}]}\n```"
	actions, conversational := svc.extractActions(response)
	assert.Empty(t, actions, "unknown action kinds must not pass validation")
	assert.Equal(t, "Done.", conversational)
}

func TestExtractActions_MalformedJSON(t *testing.T) {
	svc := newTestService(t)

	response := "Done.\n```json\n{\"actions\": [{\n```"
	actions, _ := svc.extractActions(response)
	assert.Empty(t, actions)
}

func TestExtractActions_MultipleActions(t *testing.T) {
	svc := newTestService(t)

	response := "On it.\n```json\n" +
		`{"actions": [{"action": "MARK_COMPLETED", "taskId": "t1", "completed": true}, {"action": "NONE"}]}` +
		"\n```"
	actions, _ := svc.extractActions(response)
	require.Len(t, actions, 2)
	assert.Equal(t, ActionMarkCompleted, actions[0].Action)
	require.NotNil(t, actions[0].Completed)
	assert.True(t, *actions[0].Completed)
	assert.Equal(t, ActionNone, actions[1].Action)
}

func TestResolveUserID(t *testing.T) {
	members := []memberContext{
		{ID: "pm1", UserID: "u1", Name: "Ada Lovelace"},
		{ID: "pm2", UserID: "u2", Name: "Grace Hopper"},
	}

	t.Run("ExplicitID", func(t *testing.T) {
		got := resolveUserID(HRAction{UserID: "u9"}, members)
		assert.Equal(t, "u9", got)
	})

	t.Run("FuzzyName", func(t *testing.T) {
		got := resolveUserID(HRAction{UserName: "grace"}, members)
		assert.Equal(t, "u2", got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		got := resolveUserID(HRAction{UserName: "zzzz"}, members)
		assert.Equal(t, "", got)
	})

	t.Run("NothingGiven", func(t *testing.T) {
		got := resolveUserID(HRAction{}, members)
		assert.Equal(t, "", got)
	})
}

func TestResolveAssigneeID(t *testing.T) {
	members := []memberContext{
		{ID: "pm1", UserID: "u1", Name: "Ada Lovelace"},
		{ID: "pm2", UserID: "u2", Name: "Grace Hopper"},
	}

	assert.Equal(t, "pm9", resolveAssigneeID(HRAction{AssigneeID: "pm9"}, members))
	assert.Equal(t, "pm1", resolveAssigneeID(HRAction{UserName: "ada"}, members))
	assert.Equal(t, "", resolveAssigneeID(HRAction{}, members))
}

func TestBuildPrompt_ContainsContext(t *testing.T) {
	pctx := &projectContext{
		ProjectID:    "p1",
		ProjectTitle: "Apollo",
		CompanyName:  "Acme",
		Members:      []memberContext{{ID: "pm1", Name: "Ada"}},
		Tasks:        []taskContext{{ID: "t1", Title: "Launch"}},
	}

	prompt := buildPrompt(pctx, "assign launch to ada")
	assert.Contains(t, prompt, "Apollo")
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "assign launch to ada")
	assert.Contains(t, prompt, `"action"`)
}
