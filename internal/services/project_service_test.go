package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-io/taskboard/internal/models"
)

func TestProjectService_DeleteCascadesTasks(t *testing.T) {
	tasks := newFakeTaskRepo()
	projects := newFakeProjectRepo(tasks)
	projectSvc := NewProjectService(zerolog.Nop(), projects)
	taskSvc := NewTaskService(zerolog.Nop(), tasks)

	doomed, err := projectSvc.Create(context.Background(), "sunset", "to be removed")
	require.NoError(t, err)
	survivor, err := projectSvc.Create(context.Background(), "flagship", "")
	require.NoError(t, err)

	for _, projectID := range []int64{doomed.ID, doomed.ID, survivor.ID} {
		_, err = taskSvc.Create(context.Background(), CreateTaskParams{
			Title:     "work item",
			Status:    models.StatusTodo,
			Priority:  models.PriorityLow,
			ProjectID: projectID,
		})
		require.NoError(t, err)
	}

	require.NoError(t, projectSvc.Delete(context.Background(), doomed.ID))

	remaining, err := taskSvc.List(context.Background(), ListTasksFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ProjectID)

	err = projectSvc.Delete(context.Background(), doomed.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_Update(t *testing.T) {
	projects := newFakeProjectRepo(newFakeTaskRepo())
	svc := NewProjectService(zerolog.Nop(), projects)

	project, err := svc.Create(context.Background(), "flagship", "initial")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), project.ID, "flagship", "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Description)

	_, err = svc.Update(context.Background(), 404, "ghost", "")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
