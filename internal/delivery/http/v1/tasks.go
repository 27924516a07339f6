package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/services"
)

type taskResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	Status         int       `json:"status"`
	Priority       int       `json:"priority"`
	ProjectID      int64     `json:"projectId"`
	AssignedUserID *int64    `json:"assignedUserId"`
	CompletionNote *string   `json:"completionNote"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Deadline:       task.Deadline,
		Status:         int(task.Status),
		Priority:       int(task.Priority),
		ProjectID:      task.ProjectID,
		AssignedUserID: task.AssignedUserID,
		CompletionNote: task.CompletionNote,
	}
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	filter := services.ListTasksFilter{
		// Ownership narrowing applies regardless of any supplied
		// project filter.
		AssignedUserID: ownershipScope(c),
	}

	if projectIDParam := c.Query("projectId"); projectIDParam != "" {
		projectID, err := strconv.ParseInt(projectIDParam, 10, 64)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("invalid project id")
			abort(c, newBadRequestError("invalid project id"))
			return
		}
		filter.ProjectID = &projectID
	}

	tasks, err := h.tasks.List(c, filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Title          string    `json:"title" binding:"required,max=255"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	Status         int       `json:"status"`
	Priority       *int      `json:"priority"`
	ProjectID      int64     `json:"projectId"`
	AssignedUserID *int64    `json:"assignedUserId"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.TaskPriority(*req.Priority)
	}

	task, err := h.tasks.Create(c, services.CreateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Deadline:       req.Deadline,
		Status:         models.TaskStatus(req.Status),
		Priority:       priority,
		ProjectID:      req.ProjectID,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus),
			errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newBadRequestError(err.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title          string    `json:"title" binding:"required,max=255"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	AssignedUserID *int64    `json:"assignedUserId"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Update(c, services.UpdateTaskParams{
		ID:             taskID,
		Title:          req.Title,
		Description:    req.Description,
		Deadline:       req.Deadline,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var newStatus int
	err := c.ShouldBindJSON(&newStatus)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateStatus(c, taskID, models.TaskStatus(newStatus))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task status")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "status updated",
		"newStatus": int(task.Status),
	})
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var note string
	err := c.ShouldBindJSON(&note)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Complete(c, taskID, note)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to complete task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "task completed",
		"note":    task.CompletionNote,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.tasks.Delete(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newBadRequestError("invalid id"))
		return 0, false
	}
	return id, true
}
