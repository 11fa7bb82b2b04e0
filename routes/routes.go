package routes

import (
	"NeuroScanAI/config/authorization"
	"NeuroScanAI/controllers"
	"NeuroScanAI/middleware"
	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
)

// Deps carries what the routes need from the bootstrap.
type Deps struct {
	Users        *services.UserService
	Appointments *services.AppointmentService
	Chats        *services.ChatService
	JWTSecret    string
	Limiter      *middleware.RateLimiter
}

func Routes(r *gin.Engine, d Deps) {
	gate := authorization.JWTAuth(d.JWTSecret, d.Users)

	//public
	controllers.Health(r)
	r.GET("/metrics", middleware.MetricsHandler())
	controllers.Auth(r, controllers.NewAuthController(d.Users), d.Limiter.Middleware())
	//gated per route
	controllers.Appointment(r, controllers.NewAppointmentController(d.Appointments, d.Users), gate)
	controllers.Chat(r, controllers.NewChatController(d.Chats), gate)
}
