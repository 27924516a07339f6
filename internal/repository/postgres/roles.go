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

type roleRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (r *roleRepositoryImpl) Create(ctx context.Context, role *models.Role, menuIDs []int64) error {
	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertRoleQuery = `
INSERT INTO roles (name)
VALUES ($1)
RETURNING id
`
	err = tx.QueryRow(ctx, insertRoleQuery, role.Name).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("name", role.Name).
				Msg("role with this name already exists")
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert role")
		return err
	}
	r.logger.Debug().
		Int64("role_id", role.ID).
		Msg("inserted role")

	err = insertRoleMenus(ctx, tx, role.ID, menuIDs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", role.ID).
			Msg("failed to insert role menus")
		return err
	}
	r.logger.Debug().
		Int64("role_id", role.ID).
		Int("count", len(menuIDs)).
		Msg("inserted role menus")

	return tx.Commit(ctx)
}

func (r *roleRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Role, error) {
	role := &models.Role{ID: id}

	const selectRoleByIDQuery = `
SELECT name FROM roles WHERE id = $1
`
	err := r.pgPool.QueryRow(ctx, selectRoleByIDQuery, id).Scan(&role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to select role by id")
		return nil, err
	}
	return role, nil
}

func (r *roleRepositoryImpl) FindByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{Name: name}

	const selectRoleByNameQuery = `
SELECT id FROM roles WHERE name = $1
`
	err := r.pgPool.QueryRow(ctx, selectRoleByNameQuery, name).Scan(&role.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("name", name).
			Msg("failed to select role by name")
		return nil, err
	}
	return role, nil
}

func (r *roleRepositoryImpl) ListDetailed(ctx context.Context) ([]models.RoleDetail, error) {
	const selectRolesQuery = `
SELECT r.id,
       r.name,
       m.id,
       m.name,
       m.label,
       m.icon
FROM roles r
LEFT JOIN role_menus rm ON rm.role_id = r.id
LEFT JOIN menus m ON m.id = rm.menu_id
ORDER BY r.id, m.id
`
	rows, err := r.pgPool.Query(ctx, selectRolesQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select roles")
		return nil, err
	}
	defer rows.Close()

	var details []models.RoleDetail
	for rows.Next() {
		var (
			roleID   int64
			roleName string
			menuID   *int64
			menuName *string
			label    *string
			icon     *string
		)
		err = rows.Scan(&roleID, &roleName, &menuID, &menuName, &label, &icon)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan role row")
			return nil, err
		}

		if len(details) == 0 || details[len(details)-1].ID != roleID {
			details = append(details, models.RoleDetail{
				ID:   roleID,
				Name: roleName,
			})
		}
		if menuID != nil {
			detail := &details[len(details)-1]
			detail.Menus = append(detail.Menus, models.Menu{
				ID:    *menuID,
				Name:  *menuName,
				Label: *label,
				Icon:  *icon,
			})
		}
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(details)).
		Msg("selected roles")
	return details, nil
}

func (r *roleRepositoryImpl) Delete(ctx context.Context, id int64) error {
	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deleteRoleMenusQuery = `
DELETE FROM role_menus WHERE role_id = $1
`
	_, err = tx.Exec(ctx, deleteRoleMenusQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to delete role menus")
		return err
	}

	const deleteRoleQuery = `
DELETE FROM roles WHERE id = $1
`
	tag, err := tx.Exec(ctx, deleteRoleQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to delete role")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("role_id", id).
		Msg("deleted role")

	return tx.Commit(ctx)
}

func (r *roleRepositoryImpl) Rename(ctx context.Context, id int64, name string, menuIDs []int64) error {
	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const updateRoleQuery = `
UPDATE roles SET name = $1 WHERE id = $2
`
	tag, err := tx.Exec(ctx, updateRoleQuery, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to update role")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	// Replace the whole menu set. Delete-then-insert keeps the edit
	// idempotent for repeated identical submissions.
	const deleteRoleMenusQuery = `
DELETE FROM role_menus WHERE role_id = $1
`
	_, err = tx.Exec(ctx, deleteRoleMenusQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to delete role menus")
		return err
	}

	err = insertRoleMenus(ctx, tx, id, menuIDs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", id).
			Msg("failed to insert role menus")
		return err
	}
	r.logger.Debug().
		Int64("role_id", id).
		Int("count", len(menuIDs)).
		Msg("replaced role menus")

	return tx.Commit(ctx)
}

func (r *roleRepositoryImpl) MenusForRole(ctx context.Context, roleID int64) ([]models.Menu, error) {
	const selectMenusForRoleQuery = `
SELECT m.id,
       m.name,
       m.label,
       m.icon
FROM role_menus rm
JOIN menus m ON m.id = rm.menu_id
WHERE rm.role_id = $1
ORDER BY m.id
`
	rows, err := r.pgPool.Query(ctx, selectMenusForRoleQuery, roleID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("role_id", roleID).
			Msg("failed to select menus for role")
		return nil, err
	}
	defer rows.Close()

	menus := make([]models.Menu, 0)
	for rows.Next() {
		var menu models.Menu
		err = rows.Scan(&menu.ID, &menu.Name, &menu.Label, &menu.Icon)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan menu")
			return nil, err
		}
		menus = append(menus, menu)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int64("role_id", roleID).
		Int("count", len(menus)).
		Msg("selected menus for role")
	return menus, nil
}

func insertRoleMenus(ctx context.Context, tx pgx.Tx, roleID int64, menuIDs []int64) error {
	const insertRoleMenuQuery = `
INSERT INTO role_menus (role_id, menu_id)
VALUES ($1, $2)
ON CONFLICT (role_id, menu_id) DO NOTHING
`
	for _, menuID := range menuIDs {
		_, err := tx.Exec(ctx, insertRoleMenuQuery, roleID, menuID)
		if err != nil {
			return err
		}
	}
	return nil
}
