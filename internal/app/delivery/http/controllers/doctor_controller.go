package controllers

import (
	"context"
	"net/http"
	"time"

	"medisched-service/internal/app/config"
	"medisched-service/internal/app/contracts"
	"medisched-service/internal/pkg/constvars"
	"medisched-service/internal/pkg/dto/requests"
	"medisched-service/internal/pkg/exceptions"
	"medisched-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	DoctorUsecase  contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, internalConfig *config.InternalConfig, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:            logger,
		InternalConfig: internalConfig,
		DoctorUsecase:  doctorUsecase,
	}
}

func (ctrl *DoctorController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
}

func (ctrl *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	request := &requests.CreateDoctorRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	result, err := ctrl.DoctorUsecase.CreateDoctor(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateDoctorSuccessMessage, result)
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.DoctorUsecase.FindAll(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetDoctorsSuccessMessage, result)
}

func (ctrl *DoctorController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	doctorID := chi.URLParam(r, "doctorID")
	date := r.URL.Query().Get("date")

	result, err := ctrl.DoctorUsecase.GetAvailability(ctx, doctorID, date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetAvailabilitySuccessMessage, result)
}
