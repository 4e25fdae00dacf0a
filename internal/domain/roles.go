package domain

type Role string

const (
	// User can book and cancel their own appointments
	RoleUser Role = "user"
	// Admin can additionally list accounts, block/unblock them and change roles
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// RoleRank: bigger => higher privilege
func RoleRank(r string) int {
	switch r {
	case string(RoleUser):
		return 1
	case string(RoleAdmin):
		return 2
	default:
		return 0
	}
}

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func IsValidStatus(s string) bool {
	return s == string(StatusActive) || s == string(StatusBlocked)
}
