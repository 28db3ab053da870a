package doctors

import (
	"context"
	"errors"
	"time"

	"medisched-service/internal/app/contracts"
	"medisched-service/internal/app/models"
	"medisched-service/internal/app/services/core/schedule"
	"medisched-service/internal/pkg/constvars"
	"medisched-service/internal/pkg/dto/requests"
	"medisched-service/internal/pkg/dto/responses"
	"medisched-service/internal/pkg/exceptions"
	"medisched-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		Log:                   logger,
	}
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctorRequest) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	// Reject inverted working hours at creation time so slot generation can
	// rely on start < end later.
	if _, err := schedule.GenerateSlots(models.WorkingHours{
		Start: request.WorkingHours.Start,
		End:   request.WorkingHours.End,
	}, constvars.SlotDurationMinutes); err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.Insert(ctx, &models.Doctor{
		Name:           request.Name,
		Specialization: request.Specialization,
		WorkingHours: models.WorkingHours{
			Start: request.WorkingHours.Start,
			End:   request.WorkingHours.End,
		},
	})
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	response := buildDoctorResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindAll error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		response = append(response, buildDoctorResponse(&doctor))
	}
	return response, nil
}

func (uc *doctorUsecase) GetAvailability(ctx context.Context, doctorID, date string) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	if _, err := time.Parse(constvars.CalendarDayLayout, date); err != nil {
		return nil, exceptions.ErrInvalidDateParam(err)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetAvailability error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(errors.New("no doctor with id " + doctorID))
	}

	allSlots, err := schedule.GenerateSlots(doctor.WorkingHours, constvars.SlotDurationMinutes)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetAvailability error generating slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	booked, err := uc.AppointmentRepository.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetAvailability error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	freeSlots := schedule.ResolveAvailability(allSlots, schedule.BookedTimes(booked, ""))

	uc.Log.Info("doctorUsecase.GetAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingSlotCountKey, len(allSlots)),
		zap.Int(constvars.LoggingBookedTimesCountKey, len(booked)),
	)
	return &responses.Availability{
		AvailableSlots: freeSlots,
		TotalSlots:     allSlots,
	}, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		WorkingHours: responses.WorkingHours{
			Start: doctor.WorkingHours.Start,
			End:   doctor.WorkingHours.End,
		},
		CreatedAt: doctor.CreatedAt,
		UpdatedAt: doctor.UpdatedAt,
	}
}
