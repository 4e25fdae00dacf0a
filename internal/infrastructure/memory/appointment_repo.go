package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/medibook/backend/internal/domain"
)

type AppointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Appointment
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{byID: make(map[string]domain.Appointment)}
}

func (r *AppointmentRepo) Create(ctx context.Context, a domain.Appointment) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return domain.Appointment{}, domain.ErrInternal(nil)
	}
	a.CreatedAt = time.Now()
	r.byID[a.ID] = a
	return a, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Appointment{}, domain.ErrAppointmentNotFound()
	}
	return a, nil
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appts := []domain.Appointment{}
	for _, a := range r.byID {
		if a.UserID == userID {
			appts = append(appts, a)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (r *AppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appts := make([]domain.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		appts = append(appts, a)
	}
	sortAppointments(appts)
	return appts, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrAppointmentNotFound()
	}
	delete(r.byID, id)
	return nil
}

func sortAppointments(appts []domain.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].CreatedAt.Equal(appts[j].CreatedAt) {
			return appts[i].ID < appts[j].ID
		}
		return appts[i].CreatedAt.Before(appts[j].CreatedAt)
	})
}
