package http_handlers

import (
	"net/http"

	"github.com/medibook/backend/internal/application/booking"
	"github.com/medibook/backend/internal/transport/http/dto"
	"github.com/medibook/backend/internal/transport/http/response"
)

type DoctorsHandler struct {
	svc *booking.Service
}

func NewDoctorsHandler(svc *booking.Service) *DoctorsHandler {
	return &DoctorsHandler{svc: svc}
}

// List handles GET /api/doctors. The catalog is public.
func (h *DoctorsHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDoctors(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToDoctorViews(docs))
}
