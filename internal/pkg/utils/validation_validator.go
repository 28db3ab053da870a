package utils

import (
	"time"

	"medisched-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.TimeOfDayLayout, fl.Field().String())
	return err == nil
}
