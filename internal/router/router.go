package router

import (
	"net/http"

	"github.com/eaglebank/user-directory/internal/handler"
	"github.com/eaglebank/user-directory/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New mounts the user routes and health check behind the request-id,
// logging and security-header middleware.
func New(logger *zap.SugaredLogger, users *handler.UserHandler) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.SecurityHeaders(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/users")
	{
		g.POST("", users.CreateUser)
		g.GET("", users.ListUsers)
		g.GET("/:userId", users.GetUser)
		g.PUT("/:userId", users.UpdateUser)
		g.DELETE("/:userId", users.DeleteUser)
	}

	return r
}
