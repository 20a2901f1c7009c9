package response

import "dronedesk/internal/api/models"

type UserResponse struct {
	ID        uint           `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Role      models.AppRole `json:"role"`
	Active    bool           `json:"active"`
}

type AuthResponseDTO struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}
