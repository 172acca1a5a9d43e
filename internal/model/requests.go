package model

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateLostItemRequest is the body of POST /api/lost-items. The endpoint
// takes title and place only.
type CreateLostItemRequest struct {
	Title string `json:"title"`
	Place string `json:"place"`
}

// UpdateProfileRequest is the body of PUT /api/auth/me.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ChangePasswordRequest is the body of PUT /api/auth/change-password. The
// server rejects it unless NewPassword and ConfirmPassword match.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
