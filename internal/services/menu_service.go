package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

const defaultMenuIcon = "ri-circle-line"

type menuServiceImpl struct {
	logger zerolog.Logger
	menus  repository.MenuRepository
}

func NewMenuService(
	logger zerolog.Logger,
	menus repository.MenuRepository,
) MenuService {
	return &menuServiceImpl{
		logger: logger,
		menus:  menus,
	}
}

func (s *menuServiceImpl) List(ctx context.Context) ([]models.Menu, error) {
	return s.menus.List(ctx)
}

func (s *menuServiceImpl) Create(ctx context.Context, params MenuParams) (*models.Menu, error) {
	menu := &models.Menu{
		Name:  params.Name,
		Label: params.Label,
		Icon:  params.Icon,
	}
	if menu.Icon == "" {
		menu.Icon = defaultMenuIcon
	}

	err := s.menus.Create(ctx, menu)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("name", params.Name).
				Msg("menu code already taken")
			return nil, ErrMenuAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create menu")
		return nil, err
	}

	s.logger.Info().
		Int64("menu_id", menu.ID).
		Str("name", menu.Name).
		Msg("created menu")
	return menu, nil
}

func (s *menuServiceImpl) Update(ctx context.Context, id int64, params MenuParams) (*models.Menu, error) {
	menu := &models.Menu{
		ID:    id,
		Name:  params.Name,
		Label: params.Label,
		Icon:  params.Icon,
	}

	err := s.menus.Update(ctx, menu)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrMenuNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrMenuAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("menu_id", id).
			Msg("failed to update menu")
		return nil, err
	}

	s.logger.Info().
		Int64("menu_id", id).
		Msg("updated menu")
	return menu, nil
}

func (s *menuServiceImpl) Delete(ctx context.Context, id int64) error {
	inUse, err := s.menus.InUse(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("menu_id", id).
			Msg("failed to check menu usage")
		return err
	}
	if inUse {
		s.logger.Error().
			Int64("menu_id", id).
			Msg("menu is still linked to a role")
		return ErrMenuInUse
	}

	err = s.menus.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("menu_id", id).
			Msg("failed to delete menu")
		return err
	}

	s.logger.Info().
		Int64("menu_id", id).
		Msg("deleted menu")
	return nil
}
