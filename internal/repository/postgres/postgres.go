// Package postgres implements the repository interfaces on top of a
// pgx connection pool. Multi-statement operations (role menu-set
// replacement, project cascade deletion) run inside a transaction.
package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/repository"
)

type Repositories struct {
	Users    repository.UserRepository
	Roles    repository.RoleRepository
	Menus    repository.MenuRepository
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
}

func New(logger zerolog.Logger, pgPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    &userRepositoryImpl{logger: logger, pgPool: pgPool},
		Roles:    &roleRepositoryImpl{logger: logger, pgPool: pgPool},
		Menus:    &menuRepositoryImpl{logger: logger, pgPool: pgPool},
		Projects: &projectRepositoryImpl{logger: logger, pgPool: pgPool},
		Tasks:    &taskRepositoryImpl{logger: logger, pgPool: pgPool},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
