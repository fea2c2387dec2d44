package mapper

import (
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func ToAuthResponse(result domain.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token: result.Token,
		User:  ToUserItem(result.User),
	}
}
