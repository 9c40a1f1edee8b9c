package handler

import "github.com/krm/catalog-api/internal/core/domain"

type registerUserRequest struct {
	UserID       int    `json:"UserId"       validate:"gt=0"`
	UserName     string `json:"UserName"     validate:"required,max=100"`
	UserPassword string `json:"UserPassword" validate:"required,min=6,max=72"`
}

// userResponse never carries the password hash.
type userResponse struct {
	UserID   int    `json:"UserId"`
	UserName string `json:"UserName"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{UserID: u.ID, UserName: u.Username}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
