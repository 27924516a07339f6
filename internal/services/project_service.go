package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type projectServiceImpl struct {
	logger   zerolog.Logger
	projects repository.ProjectRepository
}

func NewProjectService(
	logger zerolog.Logger,
	projects repository.ProjectRepository,
) ProjectService {
	return &projectServiceImpl{
		logger:   logger,
		projects: projects,
	}
}

func (s *projectServiceImpl) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectServiceImpl) Create(ctx context.Context, name, description string) (*models.Project, error) {
	project := &models.Project{
		Name:        name,
		Description: description,
	}

	err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().
		Int64("project_id", project.ID).
		Str("name", project.Name).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, id int64, name, description string) (*models.Project, error) {
	project := &models.Project{
		ID:          id,
		Name:        name,
		Description: description,
	}

	err := s.projects.Update(ctx, project)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("project_id", id).
			Msg("failed to update project")
		return nil, err
	}

	s.logger.Info().
		Int64("project_id", id).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.projects.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("project_id", id).
			Msg("failed to delete project")
		return err
	}

	s.logger.Info().
		Int64("project_id", id).
		Msg("deleted project with its tasks")
	return nil
}
