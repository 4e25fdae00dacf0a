package dto

import "strings"

type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" validate:"required"`
	Date     string `json:"date" validate:"required"`
}

func (r *BookAppointmentRequest) Validate() error {
	r.DoctorID = strings.TrimSpace(r.DoctorID)
	r.Date = strings.TrimSpace(r.Date)
	return validateStruct(r)
}
