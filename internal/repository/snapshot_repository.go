package repository

import (
	"context"

	"teampulse/internal/analytics"
	"teampulse/internal/models"

	"golang.org/x/sync/errgroup"
)

// SnapshotRepository assembles the analytics input for a project: the
// project summary, its full task history and its member roster with
// resolved user names.
type SnapshotRepository struct {
	projects *ProjectRepository
	tasks    *TaskRepository
	users    *UserRepository
}

func NewSnapshotRepository(projects *ProjectRepository, tasks *TaskRepository, users *UserRepository) *SnapshotRepository {
	return &SnapshotRepository{projects: projects, tasks: tasks, users: users}
}

// Load fetches the project, tasks and members concurrently, then resolves
// member names in a follow-up user lookup.
func (r *SnapshotRepository) Load(ctx context.Context, projectID string) (analytics.Snapshot, error) {
	var (
		project *models.Project
		tasks   []models.Task
		members []models.ProjectMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = r.projects.FindByID(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = r.tasks.ListAllByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = r.projects.ListMembers(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Snapshot{}, err
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := r.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	snapshot := analytics.Snapshot{
		Project: analytics.ProjectSummary{
			ID:          project.ID,
			Title:       project.Title,
			Description: project.Description,
			CreatedAt:   project.CreatedAt,
			UpdatedAt:   project.UpdatedAt,
		},
		Tasks:   make([]analytics.TaskRecord, 0, len(tasks)),
		Members: make([]analytics.MemberRecord, 0, len(members)),
	}

	for _, t := range tasks {
		snapshot.Tasks = append(snapshot.Tasks, analytics.TaskRecord{
			ID:         t.ID,
			Title:      t.Title,
			Completed:  t.Completed,
			Archived:   t.Archived,
			DueDate:    t.DueDate,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
			AssignedTo: t.AssignedTo,
		})
	}

	for _, m := range members {
		name := "Unknown"
		if user, ok := users[m.UserID]; ok {
			name = user.Name
		}
		snapshot.Members = append(snapshot.Members, analytics.MemberRecord{
			ID:     m.ID,
			UserID: m.UserID,
			Name:   name,
		})
	}

	return snapshot, nil
}
