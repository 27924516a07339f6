package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/services"
)

type projectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
	}
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	projects, err := h.projects.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list projects")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]projectResponse, len(projects))
	for i := range projects {
		response[i] = newProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

type projectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req projectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.Create(c, req.Name, req.Description)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create project")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	projectID, ok := pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	_, err = h.projects.Update(c, projectID, req.Name, req.Description)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update project")
		if errors.Is(err, services.ErrProjectNotFound) {
			abort(c, newNotFoundError(services.ErrProjectNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project updated"})
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	projectID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.projects.Delete(c, projectID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete project")
		if errors.Is(err, services.ErrProjectNotFound) {
			abort(c, newNotFoundError(services.ErrProjectNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
