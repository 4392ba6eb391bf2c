package response

import "sports-booking/internal/data/entity"

type UserResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Phone *string         `json:"phone"`
	Role  entity.UserRole `json:"role"`
	Image *string         `json:"image,omitempty"`
}

func UserToResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
		Image: user.Image,
	}
}
