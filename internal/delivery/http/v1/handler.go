package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskboard-io/taskboard/internal/services"
)

type Handler interface {
	HandleAuthMiddleware(c *gin.Context)

	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleMyMenus(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
	HandleChangePassword(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetRoles(c *gin.Context)
	HandleGetAvailableMenus(c *gin.Context)
	HandleCreateRole(c *gin.Context)
	HandleUpdateRole(c *gin.Context)
	HandleDeleteRole(c *gin.Context)

	HandleGetMenus(c *gin.Context)
	HandleCreateMenu(c *gin.Context)
	HandleUpdateMenu(c *gin.Context)
	HandleDeleteMenu(c *gin.Context)

	HandleGetProjects(c *gin.Context)
	HandleCreateProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleCreateUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)

	HandleDashboardStats(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	tokens    services.TokenService
	auth      services.AuthService
	roles     services.RoleService
	menus     services.MenuService
	projects  services.ProjectService
	tasks     services.TaskService
	users     services.UserService
	dashboard services.DashboardService
}

func New(
	logger zerolog.Logger,
	tokenService services.TokenService,
	authService services.AuthService,
	roleService services.RoleService,
	menuService services.MenuService,
	projectService services.ProjectService,
	taskService services.TaskService,
	userService services.UserService,
	dashboardService services.DashboardService,
) Handler {
	return &handlerImpl{
		logger:    logger,
		tokens:    tokenService,
		auth:      authService,
		roles:     roleService,
		menus:     menuService,
		projects:  projectService,
		tasks:     taskService,
		users:     userService,
		dashboard: dashboardService,
	}
}
