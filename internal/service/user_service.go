package service

import (
	"context"
	"errors"
	"time"

	"github.com/orderhub/backend/internal/auth"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/repository"
	"github.com/orderhub/backend/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the interface for user account operations
type UserService interface {
	// Register creates a new user account
	Register(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	// Login authenticates a user and returns a signed token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]domain.User, error)
	// GetCustomers retrieves all non-admin users
	GetCustomers(ctx context.Context) ([]domain.User, error)
	// Update applies a partial update to a user
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error)
	// Delete removes a user
	Delete(ctx context.Context, id int64) error
}

// userService implements UserService
type userService struct {
	userRepo   repository.UserRepository
	codec      *auth.Codec
	bcryptCost int
	tokenTTL   time.Duration
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, codec *auth.Codec, tokenTTL time.Duration) UserService {
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &userService{
		userRepo:   userRepo,
		codec:      codec,
		bcryptCost: bcrypt.DefaultCost,
		tokenTTL:   tokenTTL,
	}
}

// Register creates a new user account
func (s *userService) Register(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.register")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user := &domain.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Credential: string(hashed),
		Address:    req.Address,
		IsAdmin:    req.IsAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Login authenticates a user and returns a signed token
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.login")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, domain.ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(auth.Principal{ID: user.ID, IsAdmin: user.IsAdmin}, s.tokenTTL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.LoginResponse{User: user, Token: token}, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetAll retrieves all users
func (s *userService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetCustomers retrieves all non-admin users
func (s *userService) GetCustomers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetCustomers(ctx)
}

// Update applies a partial update to a user
func (s *userService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("user_id", id))

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		user.Credential = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Delete removes a user
func (s *userService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidUserID
	}
	return s.userRepo.Delete(ctx, id)
}
