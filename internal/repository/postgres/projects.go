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

type projectRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	const insertProjectQuery = `
INSERT INTO projects (name, description)
VALUES ($1, $2)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertProjectQuery,
		project.Name,
		project.Description,
	).Scan(&project.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert project")
		return err
	}
	r.logger.Debug().
		Int64("project_id", project.ID).
		Msg("inserted project")
	return nil
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	project := &models.Project{ID: id}

	const selectProjectByIDQuery = `
SELECT name, description FROM projects WHERE id = $1
`
	err := r.pgPool.QueryRow(ctx, selectProjectByIDQuery, id).Scan(
		&project.Name,
		&project.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("project_id", id).
			Msg("failed to select project by id")
		return nil, err
	}
	return project, nil
}

func (r *projectRepositoryImpl) List(ctx context.Context) ([]models.Project, error) {
	const selectProjectsQuery = `
SELECT id, name, description FROM projects ORDER BY id
`
	rows, err := r.pgPool.Query(ctx, selectProjectsQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select projects")
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var project models.Project
		err = rows.Scan(&project.ID, &project.Name, &project.Description)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan project")
			return nil, err
		}
		projects = append(projects, project)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(projects)).
		Msg("selected projects")
	return projects, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
	const updateProjectQuery = `
UPDATE projects
SET name = $1,
    description = $2
WHERE id = $3
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateProjectQuery,
		project.Name,
		project.Description,
		project.ID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("project_id", project.ID).
			Msg("failed to update project")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("project_id", project.ID).
		Msg("updated project")
	return nil
}

func (r *projectRepositoryImpl) Count(ctx context.Context) (int64, error) {
	const countProjectsQuery = `
SELECT COUNT(*) FROM projects
`
	var count int64
	err := r.pgPool.QueryRow(ctx, countProjectsQuery).Scan(&count)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to count projects")
		return 0, err
	}
	return count, nil
}

func (r *projectRepositoryImpl) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deleteProjectTasksQuery = `
DELETE FROM tasks WHERE project_id = $1
`
	tag, err := tx.Exec(ctx, deleteProjectTasksQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("project_id", id).
			Msg("failed to delete project tasks")
		return err
	}
	r.logger.Debug().
		Int64("project_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted project tasks")

	const deleteProjectQuery = `
DELETE FROM projects WHERE id = $1
`
	tag, err = tx.Exec(ctx, deleteProjectQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("project_id", id).
			Msg("failed to delete project")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("project_id", id).
		Msg("deleted project")

	return tx.Commit(ctx)
}
