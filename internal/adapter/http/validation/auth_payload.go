package validation

import (
	"strings"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildRegisterInput(req dto.RegisterRequest) (domain.RegisterInput, error) {
	input := domain.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    domain.NormalizeEmail(req.Email),
		Password: req.Password,
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return domain.RegisterInput{}, domain.ErrInvalidUserPayload
	}
	return input, nil
}

func BuildLoginInput(req dto.LoginRequest) (domain.LoginInput, error) {
	input := domain.LoginInput{
		Email:    domain.NormalizeEmail(req.Email),
		Password: req.Password,
	}
	if input.Email == "" || input.Password == "" {
		return domain.LoginInput{}, domain.ErrInvalidUserPayload
	}
	return input, nil
}
