package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}
