package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type dashboardServiceImpl struct {
	logger   zerolog.Logger
	users    repository.UserRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

func NewDashboardService(
	logger zerolog.Logger,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
) DashboardService {
	return &dashboardServiceImpl{
		logger:   logger,
		users:    users,
		projects: projects,
		tasks:    tasks,
	}
}

func (s *dashboardServiceImpl) Stats(ctx context.Context, userID int64) (*DashboardStats, error) {
	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count projects")
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count users")
		return nil, err
	}

	// Task counts are personal: only the caller's assignments.
	counts, err := s.tasks.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to count tasks by status")
		return nil, err
	}

	stats := &DashboardStats{
		TotalProjects: totalProjects,
		TotalUsers:    totalUsers,
		MyTodo:        counts[models.StatusTodo],
		MyInProgress:  counts[models.StatusInProgress],
		MyDone:        counts[models.StatusDone],
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Msg("collected dashboard stats")
	return stats, nil
}
