package auth

// SessionRequest is the password-gate login body
type SessionRequest struct {
	Password string `json:"password" binding:"required"`
}

// SessionResponse confirms an established gate session
type SessionResponse struct {
	Success bool `json:"success"`
}

// AuthResponse returned after successful OAuth callback
type AuthResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"token"`
}

// MeResponse describes the current identity
type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
