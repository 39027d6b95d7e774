package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleListMembers(c *gin.Context)
	HandleListProjects(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleGetProjectTasks(c *gin.Context)
	HandleGetTasksByStatus(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetBoard(c *gin.Context)
	HandleToggleGroup(c *gin.Context)

	HandleDragState(c *gin.Context)
	HandleDragStart(c *gin.Context)
	HandleDragEnter(c *gin.Context)
	HandleDragOver(c *gin.Context)
	HandleDragLeave(c *gin.Context)
	HandleDrop(c *gin.Context)
	HandleDragEnd(c *gin.Context)

	HandleOpenEditor(c *gin.Context)
	HandleGetEditor(c *gin.Context)
	HandleEditDraft(c *gin.Context)
	HandleSaveEditor(c *gin.Context)
	HandleCloseEditor(c *gin.Context)
	HandleEditorStatus(c *gin.Context)
	HandleRequestDelete(c *gin.Context)
	HandleCancelDelete(c *gin.Context)
	HandleConfirmDelete(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	auth      services.AuthService
	directory services.DirectoryService
	tasks     services.TaskStore
	boards    services.BoardService
	sessions  services.SessionService
	editors   services.EditorService
	now       func() time.Time
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	directoryService services.DirectoryService,
	taskStore services.TaskStore,
	boardService services.BoardService,
	sessionService services.SessionService,
	editorService services.EditorService,
) Handler {
	return &handlerImpl{
		logger:    logger,
		auth:      authService,
		directory: directoryService,
		tasks:     taskStore,
		boards:    boardService,
		sessions:  sessionService,
		editors:   editorService,
		now:       time.Now,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/logout", h.HandleLogout)

	api := router.Group("", h.HandleAuthMiddleware)
	api.GET("/members", h.HandleListMembers)
	api.GET("/projects", h.HandleListProjects)

	api.GET("/tasks", h.HandleGetTasksByStatus)
	api.GET("/tasks/:id", h.HandleGetTask)
	api.PATCH("/tasks/:id", h.HandleUpdateTask)
	api.PATCH("/tasks/:id/status", h.HandleSetTaskStatus)
	api.DELETE("/tasks/:id", h.HandleDeleteTask)
	api.POST("/tasks/:id/editor", h.HandleOpenEditor)

	project := api.Group("/projects/:projectId")
	project.GET("/tasks", h.HandleGetProjectTasks)
	project.POST("/tasks", h.HandleCreateTask)
	project.GET("/board", h.HandleGetBoard)
	project.POST("/groups/:status/toggle", h.HandleToggleGroup)

	drag := project.Group("/drag")
	drag.GET("", h.HandleDragState)
	drag.POST("/start", h.HandleDragStart)
	drag.POST("/enter", h.HandleDragEnter)
	drag.POST("/over", h.HandleDragOver)
	drag.POST("/leave", h.HandleDragLeave)
	drag.POST("/drop", h.HandleDrop)
	drag.POST("/end", h.HandleDragEnd)

	editor := api.Group("/editor/:id")
	editor.GET("", h.HandleGetEditor)
	editor.PATCH("", h.HandleEditDraft)
	editor.DELETE("", h.HandleCloseEditor)
	editor.POST("/save", h.HandleSaveEditor)
	editor.POST("/status", h.HandleEditorStatus)
	editor.POST("/delete", h.HandleRequestDelete)
	editor.DELETE("/delete", h.HandleCancelDelete)
	editor.POST("/delete/confirm", h.HandleConfirmDelete)
}
