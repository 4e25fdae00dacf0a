package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/backend/internal/application/booking"
	"github.com/medibook/backend/internal/logger"
	"github.com/medibook/backend/internal/transport/http/dto"
	"github.com/medibook/backend/internal/transport/http/middleware"
	"github.com/medibook/backend/internal/transport/http/response"
)

type AppointmentsHandler struct {
	svc *booking.Service
}

func NewAppointmentsHandler(svc *booking.Service) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc}
}

// List handles GET /api/appointments. Admins see all, users see their own.
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	appts, err := h.svc.ListFor(r.Context(), actorID, actorRole)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToAppointmentViews(appts))
}

// Book handles POST /api/appointments.
func (h *AppointmentsHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, _, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.BookAppointmentRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Book(r.Context(), userID, req.DoctorID, req.Date)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	middleware.AppointmentsBookedTotal.Inc()

	logger.WithCtx(r.Context()).Info().
		Str("appointment_id", a.ID).
		Str("doctor_id", a.DoctorID).
		Msg("appointment_booked")

	response.Created(w, dto.ToAppointmentView(a))
}

// Cancel handles DELETE /api/appointments/{id}.
func (h *AppointmentsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Cancel(r.Context(), actorID, actorRole, id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}
