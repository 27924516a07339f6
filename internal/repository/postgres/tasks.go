package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type taskRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   deadline,
                   status,
                   priority,
                   project_id,
                   assigned_user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.Deadline,
		task.Status,
		task.Priority,
		task.ProjectID,
		task.AssignedUserID,
	).Scan(&task.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return err
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{ID: id}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       deadline,
       status,
       priority,
       project_id,
       assigned_user_id,
       completion_note
FROM tasks
WHERE id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		id,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Deadline,
		&task.Status,
		&task.Priority,
		&task.ProjectID,
		&task.AssignedUserID,
		&task.CompletionNote,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("selected task by id")
	return task, nil
}

func (r *taskRepositoryImpl) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	// Nil filter fields disable the corresponding predicate.
	const selectTasksQuery = `
SELECT id,
       title,
       description,
       deadline,
       status,
       priority,
       project_id,
       assigned_user_id,
       completion_note
FROM tasks
WHERE ($1::bigint IS NULL OR project_id = $1)
  AND ($2::bigint IS NULL OR assigned_user_id = $2)
ORDER BY id
`
	rows, err := r.pgPool.Query(
		ctx,
		selectTasksQuery,
		filter.ProjectID,
		filter.AssignedUserID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Deadline,
			&task.Status,
			&task.Priority,
			&task.ProjectID,
			&task.AssignedUserID,
			&task.CompletionNote,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (r *taskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    deadline = $3,
    status = $4,
    priority = $5,
    assigned_user_id = $6,
    completion_note = $7
WHERE id = $8
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Deadline,
		task.Status,
		task.Priority,
		task.AssignedUserID,
		task.CompletionNote,
		task.ID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")
	return nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (r *taskRepositoryImpl) CountByStatus(ctx context.Context, userID int64) (map[models.TaskStatus]int64, error) {
	const countTasksByStatusQuery = `
SELECT status, COUNT(*)
FROM tasks
WHERE assigned_user_id = $1
GROUP BY status
`
	rows, err := r.pgPool.Query(ctx, countTasksByStatusQuery, userID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to count tasks by status")
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.TaskStatus]int64)
	for rows.Next() {
		var (
			status models.TaskStatus
			count  int64
		)
		err = rows.Scan(&status, &count)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan count")
			return nil, err
		}
		counts[status] = count
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return counts, nil
}
