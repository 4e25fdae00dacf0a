package dto

import "strings"

type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

func (r *SetUserStatusRequest) Validate() error {
	r.Status = strings.TrimSpace(r.Status)
	return validateStruct(r)
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (r *SetUserRoleRequest) Validate() error {
	r.Role = strings.TrimSpace(r.Role)
	return validateStruct(r)
}
