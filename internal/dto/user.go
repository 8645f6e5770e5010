package dto

import (
	"regexp"
	"strings"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/pkg/response"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CreateUserRequest represents user registration input
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Validate collects field-level failures
func (r *CreateUserRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, response.FieldError{Field: "firstName", Message: "firstName is required"})
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, response.FieldError{Field: "lastName", Message: "lastName is required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, response.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "email format is invalid"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs
}

// UpdateUserRequest represents partial user update input. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Address   *string `json:"address"`
}

// Validate collects field-level failures
func (r *UpdateUserRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		errs = append(errs, response.FieldError{Field: "firstName", Message: "firstName cannot be empty"})
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		errs = append(errs, response.FieldError{Field: "lastName", Message: "lastName cannot be empty"})
	}
	if r.Email != nil && !emailRegex.MatchString(*r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "email format is invalid"})
	}
	if r.Password != nil && len(*r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs
}

// LoginRequest represents login input
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate collects field-level failures
func (r *LoginRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, response.FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errs = append(errs, response.FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

// LoginResponse is the successful login payload
type LoginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
