package routes

import (
	"github.com/gin-gonic/gin"

	"authtools/internal/handlers"
)

func SetupRoutes(r *gin.Engine, registrationHandler *handlers.RegistrationHandler) *gin.Engine {
	register := r.Group("/register")
	{
		register.POST("", registrationHandler.Register)
		register.GET("/confirm", registrationHandler.Confirm)
		register.POST("/resend-token", registrationHandler.Resend)
	}
	return r
}
