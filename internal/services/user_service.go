package services

import (
	"context"
	"errors"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  repository.UserRepository
	roles  repository.RoleRepository
}

func NewUserService(
	logger zerolog.Logger,
	users repository.UserRepository,
	roles repository.RoleRepository,
) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
		roles:  roles,
	}
}

func (s *userServiceImpl) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) Create(ctx context.Context, params CreateUserParams) (*models.User, error) {
	// Administrative creation requires an existing role,
	// unlike registration which falls back to Employee.
	role, err := s.roles.FindByName(ctx, params.RoleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Str("role", params.RoleName).
				Msg("role not found")
			return nil, ErrRoleNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to resolve role")
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username: params.Username,
		Email:    params.Email,
		Password: passwordHash,
		RoleID:   role.ID,
		RoleName: role.Name,
	}
	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", role.Name).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) Update(ctx context.Context, params UpdateUserParams) error {
	user, err := s.users.FindByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Username = params.Username
	user.Email = params.Email

	// An unknown role name leaves the current role unchanged.
	role, err := s.roles.FindByName(ctx, params.RoleName)
	if err == nil {
		user.RoleID = role.ID
		user.RoleName = role.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Msg("failed to resolve role")
		return err
	}

	// Empty password means keep the current digest.
	if params.Password != "" {
		passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to hash password")
			return err
		}
		user.Password = passwordHash
	}

	err = s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to update user")
		return err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("updated user")
	return nil
}

func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to delete user")
		return err
	}

	s.logger.Info().
		Int64("user_id", id).
		Msg("deleted user")
	return nil
}
