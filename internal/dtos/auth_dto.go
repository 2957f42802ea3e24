package dtos

type RegisterRequest struct {
	Email         string   `json:"email" binding:"required,email"`
	Password      string   `json:"password" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	DesiredJob    *string  `json:"desiredJob"`
	DesiredSalary *float64 `json:"desiredSalary" binding:"omitempty,gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string   `json:"message"`
	Rule    string   `json:"rule,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}
