package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/services"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Role     string `json:"role"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("username", req.Username).
		Msg("register request")

	if req.Role == "" {
		req.Role = models.RoleNameEmployee
	}

	err = h.auth.Register(c, services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(services.ErrUserAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newUnauthorizedError("invalid username or password"))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    result.Token,
		Role:     result.RoleName,
		UserID:   result.UserID,
		Username: result.Username,
	})
}

type menuResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

func newMenuResponse(menu models.Menu) menuResponse {
	return menuResponse{
		ID:    menu.ID,
		Name:  menu.Name,
		Label: menu.Label,
		Icon:  menu.Icon,
	}
}

func (h *handlerImpl) HandleMyMenus(c *gin.Context) {
	menus, err := h.auth.MenusForUser(c, callerID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to resolve menus")
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newUnauthorizedError(services.ErrUserNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]menuResponse, len(menus))
	for i, menu := range menus {
		response[i] = newMenuResponse(menu)
	}
	c.JSON(http.StatusOK, response)
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.auth.UpdateProfile(c, services.UpdateProfileParams{
		UserID:   callerID(c),
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(services.ErrUserAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "profile updated",
		"username": user.Username,
		"email":    user.Email,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required,max=255"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.auth.ChangePassword(c, services.ChangePasswordParams{
		UserID:      callerID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to change password")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newBadRequestError("old password is wrong"))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
