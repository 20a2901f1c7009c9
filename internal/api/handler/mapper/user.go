package mapper

import (
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToUserResponse(user models.User) response.UserResponse {
	return response.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Active:    user.Active,
	}
}
