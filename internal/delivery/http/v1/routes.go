package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole API surface on the router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	api := router.Group("/api")

	usersRouter := api.Group("/users")
	usersRouter.POST("/register", h.HandleRegister)
	usersRouter.POST("/login", h.HandleLogin)
	usersRouter.GET("", h.HandleListUsers)

	tasksRouter := api.Group("/tasks", h.HandleAuthMiddleware)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
