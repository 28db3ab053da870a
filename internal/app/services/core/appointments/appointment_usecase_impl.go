package appointments

import (
	"context"
	"errors"
	"fmt"
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

// appointmentUsecase is the booking coordinator. Writes for one doctor are
// serialized behind a per-doctor lock, and the store's uniqueness constraint
// backs the lock up: even if the lock is lost, at most one concurrent booking
// for the same doctor and time of day can land.
type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	LockService           contracts.LockerService
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	lockService contracts.LockerService,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		LockService:           lockService,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	date, err := time.Parse(time.RFC3339, request.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	lockValue, err := uc.acquireDoctorLock(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	defer uc.releaseDoctorLock(ctx, request.DoctorID, lockValue)

	if err := uc.checkSlotFree(ctx, request.DoctorID, date, ""); err != nil {
		uc.Log.Info("appointmentUsecase.CreateAppointment slot conflict",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.String(constvars.LoggingRequestedTimeKey, schedule.TimeOfDay(date)),
		)
		return nil, err
	}

	// A cancelled request must not mutate the store.
	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrServerDeadlineExceeded(err)
	}

	appointment, err := uc.AppointmentRepository.Insert(ctx, &models.Appointment{
		DoctorID:        request.DoctorID,
		Date:            date,
		Duration:        request.Duration,
		AppointmentType: request.AppointmentType,
		PatientName:     request.PatientName,
		Notes:           request.Notes,
	})
	if err != nil {
		if errors.Is(err, exceptions.ErrSlotTaken) {
			return nil, uc.slotConflictError(ctx, request.DoctorID, date)
		}
		uc.Log.Error("appointmentUsecase.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return uc.buildAppointmentResponse(ctx, appointment), nil
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	date, err := time.Parse(time.RFC3339, request.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	existing, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("no appointment with id " + appointmentID))
	}

	lockValue, err := uc.acquireDoctorLock(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	defer uc.releaseDoctorLock(ctx, request.DoctorID, lockValue)

	// The appointment may keep its own time: its id is excluded from the
	// conflict check.
	if err := uc.checkSlotFree(ctx, request.DoctorID, date, appointmentID); err != nil {
		return nil, err
	}

	updated := *existing
	updated.DoctorID = request.DoctorID
	updated.Date = date
	if request.Duration != nil {
		updated.Duration = *request.Duration
	}
	if request.AppointmentType != nil {
		updated.AppointmentType = *request.AppointmentType
	}
	if request.PatientName != nil {
		updated.PatientName = *request.PatientName
	}
	if request.Notes != nil {
		updated.Notes = *request.Notes
	}

	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrServerDeadlineExceeded(err)
	}

	appointment, err := uc.AppointmentRepository.UpdateByID(ctx, appointmentID, &updated)
	if err != nil {
		if errors.Is(err, exceptions.ErrSlotTaken) {
			return nil, uc.slotConflictError(ctx, request.DoctorID, date)
		}
		uc.Log.Error("appointmentUsecase.UpdateAppointment error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("appointment deleted during update"))
	}

	uc.Log.Info("appointmentUsecase.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return uc.buildAppointmentResponse(ctx, appointment), nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	deleted, err := uc.AppointmentRepository.DeleteByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return exceptions.ErrAppointmentNotFound(errors.New("no appointment with id " + appointmentID))
	}

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointments, err := uc.AppointmentRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		response = append(response, *uc.buildAppointmentResponse(ctx, &appointments[i]))
	}
	return response, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("no appointment with id " + appointmentID))
	}
	return uc.buildAppointmentResponse(ctx, appointment), nil
}

// checkSlotFree loads the doctor's appointments for the requested calendar
// day and runs the conflict check. It is a pre-filter: it gives the caller
// the booked-times list up front, while the store constraint stays the final
// guard.
func (uc *appointmentUsecase) checkSlotFree(ctx context.Context, doctorID string, date time.Time, excludeID string) error {
	existing, err := uc.AppointmentRepository.FindByDoctorAndDate(ctx, doctorID, schedule.DayOf(date))
	if err != nil {
		return err
	}
	if conflict := schedule.CheckConflict(date, existing, excludeID); conflict != nil {
		return exceptions.ErrSlotConflict(conflict.RequestedTime, conflict.BookedTimes)
	}
	return nil
}

// slotConflictError rebuilds the conflict payload after the store rejected a
// write that slipped past the pre-filter.
func (uc *appointmentUsecase) slotConflictError(ctx context.Context, doctorID string, date time.Time) error {
	bookedTimes := []string{schedule.TimeOfDay(date)}
	if existing, err := uc.AppointmentRepository.FindByDoctorAndDate(ctx, doctorID, schedule.DayOf(date)); err == nil {
		bookedTimes = schedule.BookedTimes(existing, "")
	}
	return exceptions.ErrSlotConflict(schedule.TimeOfDay(date), bookedTimes)
}

func (uc *appointmentUsecase) acquireDoctorLock(ctx context.Context, doctorID string) (string, error) {
	key := fmt.Sprintf(constvars.LockDoctorBookingKeyFormat, doctorID)
	for {
		acquired, lockValue, err := uc.LockService.TryLock(ctx, key, constvars.DoctorLockExpiration)
		if err != nil {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}
		select {
		case <-ctx.Done():
			return "", exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(constvars.DoctorLockRetryInterval):
		}
	}
}

func (uc *appointmentUsecase) releaseDoctorLock(ctx context.Context, doctorID, lockValue string) {
	key := fmt.Sprintf(constvars.LockDoctorBookingKeyFormat, doctorID)
	// Release even when the request context is already cancelled; the lease
	// TTL covers the case where this fails too.
	if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("appointmentUsecase.releaseDoctorLock error releasing lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) buildAppointmentResponse(ctx context.Context, appointment *models.Appointment) *responses.Appointment {
	response := &responses.Appointment{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		Date:            appointment.Date,
		Duration:        appointment.Duration,
		AppointmentType: appointment.AppointmentType,
		PatientName:     appointment.PatientName,
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
	if err == nil && doctor != nil {
		response.Doctor = &responses.DoctorSummary{
			Name:           doctor.Name,
			Specialization: doctor.Specialization,
		}
	}
	return response
}
