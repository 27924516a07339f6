package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/services"
)

func (h *handlerImpl) HandleGetMenus(c *gin.Context) {
	menus, err := h.menus.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list menus")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]menuResponse, len(menus))
	for i, menu := range menus {
		response[i] = newMenuResponse(menu)
	}
	c.JSON(http.StatusOK, response)
}

type menuRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Label string `json:"label" binding:"required,max=255"`
	Icon  string `json:"icon" binding:"max=255"`
}

func (h *handlerImpl) HandleCreateMenu(c *gin.Context) {
	var req menuRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	menu, err := h.menus.Create(c, services.MenuParams{
		Name:  req.Name,
		Label: req.Label,
		Icon:  req.Icon,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create menu")
		if errors.Is(err, services.ErrMenuAlreadyExists) {
			abort(c, newBadRequestError(services.ErrMenuAlreadyExists.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "menu created",
		"data":    newMenuResponse(*menu),
	})
}

func (h *handlerImpl) HandleUpdateMenu(c *gin.Context) {
	menuID, ok := pathID(c)
	if !ok {
		return
	}

	var req menuRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	_, err = h.menus.Update(c, menuID, services.MenuParams{
		Name:  req.Name,
		Label: req.Label,
		Icon:  req.Icon,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update menu")
		switch {
		case errors.Is(err, services.ErrMenuNotFound):
			abort(c, newNotFoundError(services.ErrMenuNotFound.Error()))
		case errors.Is(err, services.ErrMenuAlreadyExists):
			abort(c, newBadRequestError(services.ErrMenuAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu updated"})
}

func (h *handlerImpl) HandleDeleteMenu(c *gin.Context) {
	menuID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.menus.Delete(c, menuID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete menu")
		switch {
		case errors.Is(err, services.ErrMenuNotFound):
			abort(c, newNotFoundError(services.ErrMenuNotFound.Error()))
		case errors.Is(err, services.ErrMenuInUse):
			abort(c, newConflictError(services.ErrMenuInUse.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}
