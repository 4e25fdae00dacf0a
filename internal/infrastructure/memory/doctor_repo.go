package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/medibook/backend/internal/domain"
)

type DoctorRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Doctor
}

func NewDoctorRepo() *DoctorRepo {
	return &DoctorRepo{byID: make(map[string]domain.Doctor)}
}

func (r *DoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := []domain.Doctor{}
	for _, d := range r.byID {
		if d.IsActive {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id string) (domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return domain.Doctor{}, domain.ErrDoctorNotFound()
	}
	return d, nil
}

func (r *DoctorRepo) ReplaceAll(ctx context.Context, docs []domain.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]domain.Doctor, len(docs))
	for _, d := range docs {
		r.byID[d.ID] = d
	}
	return nil
}
