package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorPublicRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController, scheduleController *controllers.ScheduleController) {
	router.Get("/", doctorController.ListDoctors)
	router.Get("/specialties", doctorController.ListSpecialties)
	router.With(middlewares.OptionalAuthenticate).Get("/{doctorID}/availability", scheduleController.GetDoctorAvailability)
}

func attachDoctorPortalRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)
	router.Use(middlewares.RequireRole(constvars.RoleTypeDoctor))

	router.Get("/profile", doctorController.GetProfile)
	router.Put("/profile", doctorController.UpdateProfile)

	router.Get("/availability", doctorController.GetWeeklyAvailability)
	router.Post("/availability", doctorController.UpdateWeeklyAvailability)

	router.Route("/appointments", func(r chi.Router) {
		r.Get("/current", appointmentController.Current)
		r.Get("/upcoming", appointmentController.Upcoming)
		r.Get("/past", appointmentController.Past)
		r.Put("/{appointmentID}/no-show", appointmentController.MarkNoShow)
		r.Put("/{appointmentID}/complete", appointmentController.MarkCompleted)
		r.Delete("/{appointmentID}", appointmentController.CancelByDoctor)
	})
}
