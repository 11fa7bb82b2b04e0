package controllers

import (
	"net/http"

	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

// Auth registers register and login behind the given limiter.
func Auth(r *gin.Engine, ctl *AuthController, limiter gin.HandlerFunc) {
	auth := r.Group("auth", limiter)
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
	}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, services.InvalidInput(err, &in))
		return
	}
	res, err := ctl.users.Register(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "token": res.Token, "user": res.User})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var in services.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, services.InvalidInput(err, &in))
		return
	}
	res, err := ctl.users.Login(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": res.Token, "user": res.User})
}
