package dto

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
// The display name is sent under "user" (not "name") — clients depend on it.
type RegisterResponse struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// ErrorResponse is the body for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
