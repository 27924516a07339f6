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

type menuRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (r *menuRepositoryImpl) Create(ctx context.Context, menu *models.Menu) error {
	const insertMenuQuery = `
INSERT INTO menus (name, label, icon)
VALUES ($1, $2, $3)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertMenuQuery,
		menu.Name,
		menu.Label,
		menu.Icon,
	).Scan(&menu.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("name", menu.Name).
				Msg("menu with this code already exists")
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert menu")
		return err
	}
	r.logger.Debug().
		Int64("menu_id", menu.ID).
		Msg("inserted menu")
	return nil
}

func (r *menuRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Menu, error) {
	menu := &models.Menu{ID: id}

	const selectMenuByIDQuery = `
SELECT name, label, icon FROM menus WHERE id = $1
`
	err := r.pgPool.QueryRow(ctx, selectMenuByIDQuery, id).Scan(
		&menu.Name,
		&menu.Label,
		&menu.Icon,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("menu_id", id).
			Msg("failed to select menu by id")
		return nil, err
	}
	return menu, nil
}

func (r *menuRepositoryImpl) List(ctx context.Context) ([]models.Menu, error) {
	const selectMenusQuery = `
SELECT id, name, label, icon FROM menus ORDER BY id
`
	rows, err := r.pgPool.Query(ctx, selectMenusQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select menus")
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
		Int("count", len(menus)).
		Msg("selected menus")
	return menus, nil
}

func (r *menuRepositoryImpl) Update(ctx context.Context, menu *models.Menu) error {
	const updateMenuQuery = `
UPDATE menus
SET name = $1,
    label = $2,
    icon = $3
WHERE id = $4
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateMenuQuery,
		menu.Name,
		menu.Label,
		menu.Icon,
		menu.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Int64("menu_id", menu.ID).
			Msg("failed to update menu")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("menu_id", menu.ID).
		Msg("updated menu")
	return nil
}

func (r *menuRepositoryImpl) Delete(ctx context.Context, id int64) error {
	const deleteMenuQuery = `
DELETE FROM menus WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteMenuQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("menu_id", id).
			Msg("failed to delete menu")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug().
		Int64("menu_id", id).
		Msg("deleted menu")
	return nil
}

func (r *menuRepositoryImpl) InUse(ctx context.Context, menuID int64) (bool, error) {
	const selectMenuInUseQuery = `
SELECT EXISTS (
    SELECT 1 FROM role_menus WHERE menu_id = $1
)
`
	var exists bool
	err := r.pgPool.QueryRow(ctx, selectMenuInUseQuery, menuID).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("menu_id", menuID).
			Msg("failed to check menu usage")
		return false, err
	}
	return exists, nil
}
