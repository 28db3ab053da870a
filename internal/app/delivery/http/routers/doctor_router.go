package routers

import (
	"medisched-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Post("/", doctorController.CreateDoctor)
	router.Get("/", doctorController.FindAll)
	router.Get("/{doctorID}/slots", doctorController.GetAvailability)
}
