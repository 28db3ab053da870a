package contracts

import (
	"context"

	"medisched-service/internal/app/models"
	"medisched-service/internal/pkg/dto/requests"
	"medisched-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointmentRequest) (*responses.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentRequest) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) error
	FindAll(ctx context.Context) ([]responses.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
}

// AppointmentRepository owns appointment documents. Find methods return
// (nil, nil) when no document matches. Insert and UpdateByID return
// exceptions.ErrSlotTaken when the (doctorId, slotKey) uniqueness constraint
// rejects the write.
type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	// FindByDoctorAndDate returns the doctor's appointments for one calendar
	// day (YYYY-MM-DD), ordered by time of day ascending.
	FindByDoctorAndDate(ctx context.Context, doctorID, day string) ([]models.Appointment, error)
	UpdateByID(ctx context.Context, appointmentID string, appointment *models.Appointment) (*models.Appointment, error)
	DeleteByID(ctx context.Context, appointmentID string) (bool, error)
}
