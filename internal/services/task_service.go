package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

const (
	defaultProjectID    = 1
	defaultDeadlineFrom = 7 * 24 * time.Hour
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  repository.TaskRepository
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) List(ctx context.Context, filter ListTasksFilter) ([]models.Task, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{
		ProjectID:      filter.ProjectID,
		AssignedUserID: filter.AssignedUserID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if !params.Status.Valid() {
		s.logger.Error().
			Int("status", int(params.Status)).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}
	if !params.Priority.Valid() {
		s.logger.Error().
			Int("priority", int(params.Priority)).
			Msg("invalid task priority")
		return nil, ErrInvalidTaskPriority
	}

	task := &models.Task{
		Title:          params.Title,
		Description:    params.Description,
		Deadline:       params.Deadline,
		Status:         params.Status,
		Priority:       params.Priority,
		ProjectID:      params.ProjectID,
		AssignedUserID: params.AssignedUserID,
	}
	if task.Deadline.IsZero() {
		task.Deadline = time.Now().Add(defaultDeadlineFrom)
	}
	if task.ProjectID == 0 {
		task.ProjectID = defaultProjectID
	}

	err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("project_id", task.ProjectID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// Status and priority stay untouched here; status moves only
	// through UpdateStatus and Complete.
	task.Title = params.Title
	task.Description = params.Description
	task.Deadline = params.Deadline
	task.AssignedUserID = params.AssignedUserID

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		s.logger.Error().
			Int("status", int(status)).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = status

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", id).
		Int("status", int(status)).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) Complete(ctx context.Context, id int64, note string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// Forced completion: Done regardless of the prior state,
	// note overwrites whatever was there.
	task.Status = models.StatusDone
	task.CompletionNote = &note

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to complete task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("completed task")
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tasks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}
