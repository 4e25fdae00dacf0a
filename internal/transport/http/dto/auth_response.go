package dto

// SignupResponse acknowledges account creation; no token is issued until
// the first login.
type SignupResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the flat payload the web client stores.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// MeResponse is returned by /api/auth/me.
type MeResponse struct {
	User UserView `json:"user"`
}

// SetUserStatusResponse is returned by the admin status endpoint.
type SetUserStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SetUserRoleResponse is returned by the admin role endpoint.
type SetUserRoleResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}
