package dto

// TokenRequest asks for a development JWT for the given staff member.
type TokenRequest struct {
	StaffID string `json:"staffID" binding:"required"`
}

// TokenResponse carries the signed JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
