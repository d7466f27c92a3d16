package dto

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Dana"`
	Email    string `json:"email" binding:"required,looseemail" example:"dana@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
	Remember bool   `json:"remember"`
}
