package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type roleServiceImpl struct {
	logger zerolog.Logger
	roles  repository.RoleRepository
	users  repository.UserRepository
}

func NewRoleService(
	logger zerolog.Logger,
	roles repository.RoleRepository,
	users repository.UserRepository,
) RoleService {
	return &roleServiceImpl{
		logger: logger,
		roles:  roles,
		users:  users,
	}
}

func (s *roleServiceImpl) List(ctx context.Context) ([]models.RoleDetail, error) {
	return s.roles.ListDetailed(ctx)
}

func (s *roleServiceImpl) Create(ctx context.Context, name string, menuIDs []int64) (*models.Role, error) {
	role := &models.Role{Name: name}

	err := s.roles.Create(ctx, role, menuIDs)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("name", name).
				Msg("role name already taken")
			return nil, ErrRoleAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create role")
		return nil, err
	}

	s.logger.Info().
		Int64("role_id", role.ID).
		Str("name", role.Name).
		Int("menus", len(menuIDs)).
		Msg("created role")
	return role, nil
}

func (s *roleServiceImpl) Update(ctx context.Context, id int64, name string, menuIDs []int64) error {
	err := s.roles.Rename(ctx, id, name, menuIDs)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return ErrRoleAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to update role")
		return err
	}

	s.logger.Info().
		Int64("role_id", id).
		Int("menus", len(menuIDs)).
		Msg("updated role and replaced its menu set")
	return nil
}

func (s *roleServiceImpl) Delete(ctx context.Context, id int64) error {
	inUse, err := s.users.AnyWithRole(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to check role usage")
		return err
	}
	if inUse {
		s.logger.Error().
			Int64("role_id", id).
			Msg("role is still assigned to a user")
		return ErrRoleInUse
	}

	err = s.roles.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to delete role")
		return err
	}

	s.logger.Info().
		Int64("role_id", id).
		Msg("deleted role")
	return nil
}
