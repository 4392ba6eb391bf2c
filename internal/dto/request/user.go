package request

type UpdateProfileRequest struct {
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone"`
}
