package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/session"
)

// RegisterRoutes mounts the health check and the /api routes on r.
func RegisterRoutes(r gin.IRouter, authHandler *AuthHandler, taskHandler *TaskHandler, sessions *session.Holder) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except profile)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/challenge/submit", authHandler.SubmitChallenge)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/profile", middleware.RequireSession(sessions), authHandler.Profile)
		}

		// Task routes (protected)
		todos := api.Group("/todos")
		todos.Use(middleware.RequireSession(sessions))
		{
			todos.GET("", taskHandler.ListTasks)
			todos.POST("", taskHandler.CreateTask)
			todos.GET("/dashboard/stats", taskHandler.DashboardStats)
			todos.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
			todos.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
		}
	}
}
