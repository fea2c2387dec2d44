package app

import (
	"regexp"
	"strings"

	"taskmanager/internal/client/api"
)

const (
	minPasswordLength = 6

	FieldGeneral         = "general"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldTitle           = "title"
	FieldDescription     = "description"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

type LoginForm struct {
	Email    string
	Password string
}

type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// TaskForm backs both the create and the edit modal.
type TaskForm struct {
	Title       string
	Description string
	Status      string
}

func emptyTaskForm() TaskForm {
	return TaskForm{Status: api.StatusPending}
}

func (f TaskForm) input() api.TaskInput {
	return api.TaskInput{Title: f.Title, Description: f.Description, Status: f.Status}
}

func validateEmail(errs Errors, email string) {
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Email is invalid"
	}
}

func validatePassword(errs Errors, password string) {
	switch {
	case password == "":
		errs[FieldPassword] = "Password is required"
	case len(password) < minPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	validateEmail(errs, f.Email)
	validatePassword(errs, f.Password)
	return errs
}

func (f RegisterForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs[FieldName] = "Name is required"
	}
	validateEmail(errs, f.Email)
	validatePassword(errs, f.Password)
	if f.Password != f.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	return errs
}

func (f TaskForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs[FieldDescription] = "Description is required"
	}
	return errs
}
