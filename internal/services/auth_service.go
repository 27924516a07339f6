package services

import (
	"context"
	"errors"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  repository.UserRepository
	roles  repository.RoleRepository
	tokens TokenService
}

func NewAuthService(
	logger zerolog.Logger,
	users repository.UserRepository,
	roles repository.RoleRepository,
	tokens TokenService,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		roles:  roles,
		tokens: tokens,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) error {
	role, err := s.roles.FindByName(ctx, params.RoleName)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Err(err).
				Str("role", params.RoleName).
				Msg("failed to resolve role")
			return err
		}

		// Unknown role names fall back to Employee.
		role, err = s.roles.FindByName(ctx, models.RoleNameEmployee)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to resolve fallback role")
			return err
		}
	}

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return err
	}

	user := &models.User{
		Username: params.Username,
		Email:    params.Email,
		Password: passwordHash,
		RoleID:   role.ID,
	}
	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("username", params.Username).
				Msg("username already taken")
			return ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create user")
		return err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", role.Name).
		Msg("registered user")
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Str("username", params.Username).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("username", params.Username).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrUserPasswordMismatch
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	roleName := user.RoleName
	if roleName == "" {
		roleName = models.RoleNameEmployee
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", roleName).
		Msg("logged in")
	return &LoginResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		RoleName: roleName,
	}, nil
}

func (s *authServiceImpl) MenusForUser(ctx context.Context, userID int64) ([]models.Menu, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select user by id")
		return nil, err
	}

	// No resolvable role means no menus, not a failure.
	if user.RoleName == "" {
		return []models.Menu{}, nil
	}

	menus, err := s.roles.MenusForRole(ctx, user.RoleID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("role_id", user.RoleID).
			Msg("failed to resolve menus")
		return nil, err
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int("count", len(menus)).
		Msg("resolved menus")
	return menus, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error) {
	user, err := s.users.FindByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Username = params.Username
	user.Email = params.Email

	err = s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("updated profile")
	return user, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	user, err := s.users.FindByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	match, err := argon2id.ComparePasswordAndHash(params.OldPassword, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return err
	} else if !match {
		s.logger.Error().
			Int64("user_id", user.ID).
			Msg("old password mismatch")
		return ErrUserPasswordMismatch
	}

	passwordHash, err := argon2id.CreateHash(params.NewPassword, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return err
	}
	user.Password = passwordHash

	err = s.users.Update(ctx, user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to update password")
		return err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("changed password")
	return nil
}
