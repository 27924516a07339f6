package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/config"
	"github.com/taskboard-io/taskboard/internal/delivery/http/v1"
	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository/postgres"
	"github.com/taskboard-io/taskboard/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Block until an interrupt arrives, then drain in-flight
	// requests within the configured shutdown timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	repos := postgres.New(globalLogger, globalPostgresPool)
	tokenService := services.NewTokenService(
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.TokenTTL,
	)
	v1Handler := v1.New(
		globalLogger,
		tokenService,
		services.NewAuthService(globalLogger, repos.Users, repos.Roles, tokenService),
		services.NewRoleService(globalLogger, repos.Roles, repos.Users),
		services.NewMenuService(globalLogger, repos.Menus),
		services.NewProjectService(globalLogger, repos.Projects),
		services.NewTaskService(globalLogger, repos.Tasks),
		services.NewUserService(globalLogger, repos.Users, repos.Roles),
		services.NewDashboardService(globalLogger, repos.Users, repos.Projects, repos.Tasks),
	)
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.GET("/my-menus", v1Handler.HandleAuthMiddleware, v1Handler.HandleMyMenus)
	authRouter.PUT("/profile", v1Handler.HandleAuthMiddleware, v1Handler.HandleUpdateProfile)
	authRouter.PUT("/change-password", v1Handler.HandleAuthMiddleware, v1Handler.HandleChangePassword)

	taskRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.GET("", v1Handler.HandleGetTasks)
	taskRouter.POST("",
		v1.RequireTier(models.TierAdmin, models.TierProjectManager),
		v1Handler.HandleCreateTask)
	taskRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	taskRouter.PUT("/:id/status", v1Handler.HandleSetTaskStatus)
	taskRouter.PUT("/:id/complete", v1Handler.HandleCompleteTask)
	taskRouter.DELETE("/:id", v1Handler.HandleDeleteTask)

	roleRouter := router.Group("/roles",
		v1Handler.HandleAuthMiddleware,
		v1.RequireTier(models.TierAdmin))
	roleRouter.GET("", v1Handler.HandleGetRoles)
	roleRouter.GET("/menus", v1Handler.HandleGetAvailableMenus)
	roleRouter.POST("", v1Handler.HandleCreateRole)
	roleRouter.PUT("/:id", v1Handler.HandleUpdateRole)
	roleRouter.DELETE("/:id", v1Handler.HandleDeleteRole)

	menuRouter := router.Group("/menus",
		v1Handler.HandleAuthMiddleware,
		v1.RequireTier(models.TierAdmin))
	menuRouter.GET("", v1Handler.HandleGetMenus)
	menuRouter.POST("", v1Handler.HandleCreateMenu)
	menuRouter.PUT("/:id", v1Handler.HandleUpdateMenu)
	menuRouter.DELETE("/:id", v1Handler.HandleDeleteMenu)

	projectRouter := router.Group("/projects", v1Handler.HandleAuthMiddleware)
	projectRouter.GET("", v1Handler.HandleGetProjects)
	projectRouter.POST("", v1Handler.HandleCreateProject)
	projectRouter.PUT("/:id", v1Handler.HandleUpdateProject)
	projectRouter.DELETE("/:id", v1Handler.HandleDeleteProject)

	userRouter := router.Group("/users", v1Handler.HandleAuthMiddleware)
	userRouter.GET("", v1Handler.HandleGetUsers)
	userRouter.GET("/:id", v1Handler.HandleGetUser)
	userRouter.POST("", v1.RequireTier(models.TierAdmin), v1Handler.HandleCreateUser)
	userRouter.PUT("/:id", v1.RequireTier(models.TierAdmin), v1Handler.HandleUpdateUser)
	userRouter.DELETE("/:id", v1.RequireTier(models.TierAdmin), v1Handler.HandleDeleteUser)

	router.GET("/dashboard/stats",
		v1Handler.HandleAuthMiddleware,
		v1Handler.HandleDashboardStats)
}
