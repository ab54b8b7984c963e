package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)
	router.Use(middlewares.RequireRole(constvars.RoleTypePatient))

	router.Get("/", appointmentController.FindAll)
	router.Post("/", appointmentController.Create)
	router.Put("/{appointmentID}", appointmentController.Reschedule)
	router.Delete("/{appointmentID}", appointmentController.Cancel)
}
