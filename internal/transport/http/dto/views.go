package dto

import (
	"time"

	"github.com/medibook/backend/internal/domain"
)

// UserView is the public user payload. The password hash never leaves the
// service.
type UserView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToUserView(u domain.User) UserView {
	return UserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		IsLoggedIn: u.IsLoggedIn,
		CreatedAt:  u.CreatedAt,
	}
}

func ToUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, ToUserView(u))
	}
	return views
}

type DoctorView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Experience      int     `json:"experience"`
	ConsultationFee int     `json:"consultationFee"`
	Availability    string  `json:"availability"`
	Rating          float64 `json:"rating"`
}

func ToDoctorView(d domain.Doctor) DoctorView {
	return DoctorView{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		Email:           d.Email,
		Phone:           d.Phone,
		Experience:      d.Experience,
		ConsultationFee: d.ConsultationFee,
		Availability:    d.Availability,
		Rating:          d.Rating,
	}
}

func ToDoctorViews(docs []domain.Doctor) []DoctorView {
	views := make([]DoctorView, 0, len(docs))
	for _, d := range docs {
		views = append(views, ToDoctorView(d))
	}
	return views
}

type AppointmentView struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctorId"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToAppointmentView(a domain.Appointment) AppointmentView {
	return AppointmentView{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		UserID:    a.UserID,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
	}
}

func ToAppointmentViews(appts []domain.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, ToAppointmentView(a))
	}
	return views
}
