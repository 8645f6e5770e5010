package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/service"
	"github.com/orderhub/backend/pkg/response"
)

// UserHandler handles user account HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles user registration
// POST /api/user
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid user payload", details)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			response.Unauthorized(c, "email already registered")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

// Login handles user login
// POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid login payload", details)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// GetAll returns every user
// GET /api/user/all
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Success(c, users)
}

// GetCustomers returns non-admin users only
// GET /api/user/allCustomers
func (h *UserHandler) GetCustomers(c *gin.Context) {
	users, err := h.userService.GetCustomers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Success(c, users)
}

// GetByEmail returns one user looked up by email
// GET /api/user/:email
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, user)
}

// Update applies a partial update to a user
// PUT /api/user/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid user payload", details)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			response.Error(c, http.StatusConflict, "email already registered")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, user)
}

// Delete removes a user
// DELETE /api/user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}
