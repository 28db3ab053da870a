package requests

type WorkingHoursRequest struct {
	Start string `json:"start" validate:"required,time_of_day"`
	End   string `json:"end" validate:"required,time_of_day"`
}

type CreateDoctorRequest struct {
	Name           string              `json:"name" validate:"required"`
	Specialization string              `json:"specialization"`
	WorkingHours   WorkingHoursRequest `json:"workingHours" validate:"required"`
}
