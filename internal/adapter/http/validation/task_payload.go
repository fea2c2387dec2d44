package validation

import (
	"strings"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return domain.CreateTaskInput{}, domain.ErrTaskFieldsRequired
	}

	status := domain.TaskStatus(req.Status)
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !status.Valid() {
		return domain.CreateTaskInput{}, domain.ErrInvalidTaskStatus
	}

	return domain.CreateTaskInput{
		Title:       title,
		Description: description,
		Status:      status,
	}, nil
}

// BuildUpdateTaskInput keeps only the fields that carry a value. Blank strings
// are indistinguishable from omitted ones.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest) (domain.UpdateTaskInput, error) {
	var input domain.UpdateTaskInput

	if value := strings.TrimSpace(req.Title); value != "" {
		input.Title = &value
	}
	if value := strings.TrimSpace(req.Description); value != "" {
		input.Description = &value
	}
	if req.Status != "" {
		status := domain.TaskStatus(req.Status)
		if !status.Valid() {
			return domain.UpdateTaskInput{}, domain.ErrInvalidTaskStatus
		}
		input.Status = &status
	}

	return input, nil
}
