package contracts

import (
	"context"

	"medisched-service/internal/app/models"
	"medisched-service/internal/pkg/dto/requests"
	"medisched-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, request *requests.CreateDoctorRequest) (*responses.Doctor, error)
	FindAll(ctx context.Context) ([]responses.Doctor, error)
	GetAvailability(ctx context.Context, doctorID, date string) (*responses.Availability, error)
}

// DoctorRepository owns doctor documents. Find methods return (nil, nil) when
// no document matches.
type DoctorRepository interface {
	Insert(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error)
	FindAll(ctx context.Context) ([]models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}
