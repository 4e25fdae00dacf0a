package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/medibook/backend/internal/domain"
	"github.com/medibook/backend/internal/logger"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederUserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

type SeederDoctorRepo interface {
	ReplaceAll(ctx context.Context, docs []domain.Doctor) error
}

// SeedUsers creates the dev accounts. Duplicates are ignored so restarts
// are safe.
func SeedUsers(ctx context.Context, repo SeederUserRepo, hasher SeederHasher) {
	type seedUser struct {
		Name  string
		Email string
		Role  string
		Pass  string
	}

	seeds := []seedUser{
		{Name: "Admin", Email: "admin@example.com", Role: "admin", Pass: "AdminPassword123!"},
		{Name: "Test User", Email: "user@example.com", Role: "user", Pass: "UserPassword123!"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("email", s.Email).Msg("seed: hash failed")
			continue
		}

		u := domain.User{
			ID:           uuid.NewString(),
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: hash,
			Role:         s.Role,
			Status:       string(domain.StatusActive),
		}

		if _, err := repo.Create(ctx, u); err != nil {
			// already seeded
			continue
		}
	}

	logger.Logger.Info().Msg("seed: users seeded")
}

// SeedDoctors replaces the doctor catalog with the canonical twelve.
func SeedDoctors(ctx context.Context, repo SeederDoctorRepo) error {
	type seedDoctor struct {
		Name           string
		Specialization string
		Email          string
		Phone          string
		Experience     int
		Fee            int
		Availability   string
	}

	seeds := []seedDoctor{
		{"Ahmed Hassan", "Cardiologist", "ahmed.hassan@cardio.pk", "+92-300-1234567", 15, 3000, "Mon-Fri 9AM-5PM"},
		{"Sara Khan", "Dentist", "sara.khan@dental.pk", "+92-301-2345678", 8, 2000, "Mon-Sat 10AM-6PM"},
		{"Ali Raza", "Neurologist", "ali.raza@neuro.pk", "+92-302-3456789", 12, 3500, "Tue-Sat 11AM-7PM"},
		{"Fatima Sheikh", "Pediatrician", "fatima.sheikh@kids.pk", "+92-303-4567890", 10, 2500, "Mon-Fri 8AM-4PM"},
		{"Muhammad Asif", "Orthopedic Surgeon", "asif.ortho@bones.pk", "+92-304-5678901", 18, 4000, "Mon-Thu 2PM-8PM"},
		{"Ayesha Malik", "Dermatologist", "ayesha.malik@skin.pk", "+92-305-6789012", 7, 2200, "Tue-Sat 9AM-5PM"},
		{"Hassan Ali", "General Surgeon", "hassan.surgery@general.pk", "+92-306-7890123", 20, 3800, "Mon-Wed-Fri 3PM-9PM"},
		{"Zainab Ahmed", "Gynecologist", "zainab.ahmed@women.pk", "+92-307-8901234", 14, 3200, "Mon-Sat 10AM-6PM"},
		{"Tariq Mahmood", "ENT Specialist", "tariq.ent@throat.pk", "+92-308-9012345", 16, 2800, "Tue-Thu-Sat 11AM-7PM"},
		{"Sadia Khatoon", "Psychiatrist", "sadia.mind@mental.pk", "+92-309-0123456", 9, 3500, "Mon-Fri 1PM-7PM"},
		{"Imran Sheikh", "Urologist", "imran.urology@kidney.pk", "+92-310-1234567", 13, 3300, "Mon-Wed-Fri 10AM-6PM"},
		{"Rabia Noor", "Ophthalmologist", "rabia.eyes@vision.pk", "+92-311-2345678", 11, 2600, "Tue-Sat 9AM-5PM"},
	}

	docs := make([]domain.Doctor, 0, len(seeds))
	for _, s := range seeds {
		docs = append(docs, domain.Doctor{
			ID:              uuid.NewString(),
			Name:            s.Name,
			Specialization:  s.Specialization,
			Email:           s.Email,
			Phone:           s.Phone,
			Experience:      s.Experience,
			ConsultationFee: s.Fee,
			Availability:    s.Availability,
			Rating:          4.5,
			IsActive:        true,
		})
	}

	if err := repo.ReplaceAll(ctx, docs); err != nil {
		return err
	}

	logger.Logger.Info().Int("count", len(docs)).Msg("seed: doctor catalog seeded")
	return nil
}
