package controllers

import (
	"net/http"

	"NeuroScanAI/config/authorization"
	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	appointments *services.AppointmentService
	users        *services.UserService
}

func NewAppointmentController(appointments *services.AppointmentService, users *services.UserService) *AppointmentController {
	return &AppointmentController{appointments: appointments, users: users}
}

// Appointment registers the appointment routes. Status changes sit behind gate.
func Appointment(r *gin.Engine, ctl *AppointmentController, gate gin.HandlerFunc) {
	appointment := r.Group("appointments")
	{
		appointment.POST("", ctl.CreateAppointment)
		appointment.POST("/book", ctl.CreateAppointment)
		appointment.GET("/doctors", ctl.FetchAllDoctors)
		appointment.GET("/doctor/:doctorId", ctl.FetchDoctorAppointments)
		appointment.GET("/by-patient/:patientId", ctl.FetchPatientAppointments)
		appointment.PUT("/accept/:id", gate, ctl.AcceptAppointment)
		appointment.PUT("/reject/:id", gate, ctl.RejectAppointment)
	}
}

/*
* Bind JSON
* And Pass to the service
 */
func (ctl *AppointmentController) CreateAppointment(c *gin.Context) {
	var in services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, services.InvalidInput(err, &in))
		return
	}
	apt, err := ctl.appointments.CreateAppointment(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created", "appointment": apt})
}

func (ctl *AppointmentController) FetchAllDoctors(c *gin.Context) {
	doctors, err := ctl.users.FetchAllDoctors(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

/*
* Get doctorId from param
* Optional status from query
 */
func (ctl *AppointmentController) FetchDoctorAppointments(c *gin.Context) {
	list, err := ctl.appointments.FetchAppointmentsForDoctor(c.Request.Context(), c.Param("doctorId"), c.Query("status"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *AppointmentController) FetchPatientAppointments(c *gin.Context) {
	list, err := ctl.appointments.FetchAppointmentsForPatient(c.Request.Context(), c.Param("patientId"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *AppointmentController) AcceptAppointment(c *gin.Context) {
	identity, _ := authorization.GetIdentity(c)
	apt, err := ctl.appointments.AcceptAppointment(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (ctl *AppointmentController) RejectAppointment(c *gin.Context) {
	identity, _ := authorization.GetIdentity(c)
	apt, err := ctl.appointments.RejectAppointment(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}
