package user

import "localwear-be/internal/auth"

type Response struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address *string   `json:"address,omitempty"`
	Role    auth.Role `json:"role"`
}

func ToResponse(u *User) *Response {
	if u == nil {
		return nil
	}
	return &Response{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    u.Role,
	}
}
