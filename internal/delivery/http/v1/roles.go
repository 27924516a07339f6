package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/services"
)

type roleDetailResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	MenuLabels []string `json:"menuLabels"`
	MenuIDs    []int64  `json:"menuIds"`
}

func (h *handlerImpl) HandleGetRoles(c *gin.Context) {
	roles, err := h.roles.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list roles")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]roleDetailResponse, len(roles))
	for i, role := range roles {
		detail := roleDetailResponse{
			ID:         role.ID,
			Name:       role.Name,
			MenuLabels: make([]string, 0, len(role.Menus)),
			MenuIDs:    make([]int64, 0, len(role.Menus)),
		}
		for _, menu := range role.Menus {
			detail.MenuLabels = append(detail.MenuLabels, menu.Label)
			detail.MenuIDs = append(detail.MenuIDs, menu.ID)
		}
		response[i] = detail
	}
	c.JSON(http.StatusOK, response)
}

// HandleGetAvailableMenus lists every menu so the role editor can
// render its checkboxes.
func (h *handlerImpl) HandleGetAvailableMenus(c *gin.Context) {
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

type roleRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	MenuIDs []int64 `json:"menuIds"`
}

func (h *handlerImpl) HandleCreateRole(c *gin.Context) {
	var req roleRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	role, err := h.roles.Create(c, req.Name, req.MenuIDs)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create role")
		if errors.Is(err, services.ErrRoleAlreadyExists) {
			abort(c, newBadRequestError(services.ErrRoleAlreadyExists.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "role created",
		"roleId":  role.ID,
	})
}

func (h *handlerImpl) HandleUpdateRole(c *gin.Context) {
	roleID, ok := pathID(c)
	if !ok {
		return
	}

	var req roleRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.roles.Update(c, roleID, req.Name, req.MenuIDs)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update role")
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			abort(c, newNotFoundError(services.ErrRoleNotFound.Error()))
		case errors.Is(err, services.ErrRoleAlreadyExists):
			abort(c, newBadRequestError(services.ErrRoleAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role and permissions updated"})
}

func (h *handlerImpl) HandleDeleteRole(c *gin.Context) {
	roleID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.roles.Delete(c, roleID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete role")
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			abort(c, newNotFoundError(services.ErrRoleNotFound.Error()))
		case errors.Is(err, services.ErrRoleInUse):
			abort(c, newConflictError(services.ErrRoleInUse.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role deleted"})
}
