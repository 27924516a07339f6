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

type userRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (username,
                   email,
                   password,
                   role_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.Email,
		user.Password,
		user.RoleID,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("username", user.Username).
				Msg("user with this username already exists")
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return err
	}
	r.logger.Debug().
		Int64("user_id", user.ID).
		Msg("inserted user")
	return nil
}

func (r *userRepositoryImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{Username: username}

	const selectUserByUsernameQuery = `
SELECT u.id,
       u.email,
       u.password,
       u.role_id,
       COALESCE(r.name, '')
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.username = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		username,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.RoleID,
		&user.RoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("username", username).
			Msg("failed to select user by username")
		return nil, err
	}
	r.logger.Debug().
		Int64("user_id", user.ID).
		Msg("selected user by username")
	return user, nil
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{ID: id}

	const selectUserByIDQuery = `
SELECT u.username,
       u.email,
       u.password,
       u.role_id,
       COALESCE(r.name, '')
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		id,
	).Scan(
		&user.Username,
		&user.Email,
		&user.Password,
		&user.RoleID,
		&user.RoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	r.logger.Debug().
		Int64("user_id", id).
		Msg("selected user by id")
	return user, nil
}

func (r *userRepositoryImpl) List(ctx context.Context) ([]models.User, error) {
	const selectUsersQuery = `
SELECT u.id,
       u.username,
       u.email,
       u.role_id,
       COALESCE(r.name, '')
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
ORDER BY u.id
`
	rows, err := r.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err = rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.RoleID,
			&user.RoleName,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")
	return users, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	const updateUserQuery = `
UPDATE users
SET username = $1,
    email = $2,
    password = $3,
    role_id = $4
WHERE id = $5
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateUserQuery,
		user.Username,
		user.Email,
		user.Password,
		user.RoleID,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to update user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("user_id", user.ID).
		Msg("updated user")
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id int64) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("user_id", id).
		Msg("deleted user")
	return nil
}

func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	const countUsersQuery = `
SELECT COUNT(*) FROM users
`
	var count int64
	err := r.pgPool.QueryRow(ctx, countUsersQuery).Scan(&count)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to count users")
		return 0, err
	}
	return count, nil
}

func (r *userRepositoryImpl) AnyWithRole(ctx context.Context, roleID int64) (bool, error) {
	const selectAnyWithRoleQuery = `
SELECT EXISTS (
    SELECT 1 FROM users WHERE role_id = $1
)
`
	var exists bool
	err := r.pgPool.QueryRow(ctx, selectAnyWithRoleQuery, roleID).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", roleID).
			Msg("failed to check users for role")
		return false, err
	}
	return exists, nil
}
