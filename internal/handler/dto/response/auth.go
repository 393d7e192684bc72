package response

import (
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type MeResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsMember bool      `json:"is_member"`
}

func FromAuthorizedUser(view *queries.AuthorizedUserView) *MeResponse {
	return &MeResponse{
		ID:       view.ID,
		Email:    view.Email,
		Name:     view.Name,
		Role:     view.Role,
		IsMember: view.IsMember,
	}
}
