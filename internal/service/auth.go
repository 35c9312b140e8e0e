package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aiteam4i/AITeamInterns/internal/crypto"
	"github.com/aiteam4i/AITeamInterns/internal/model"
	"github.com/aiteam4i/AITeamInterns/internal/repository"
)

var (
	ErrFieldsRequired        = errors.New("all fields are required")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters long")
	ErrEmailTaken            = errors.New("user with this email already exists")
	ErrEmailPasswordRequired = errors.New("email and password are required")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
)

// UserStore is the persistence surface the services depend on. The concrete
// implementation is repository.UserRepository; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthService handles registration and login business logic.
type AuthService struct {
	store     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new employee account and returns an auth token.
// Email uniqueness is enforced by the insert itself; there is no
// check-then-insert race.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	if req.EmployeeName == "" || req.EmployeeEmail == "" || req.Password == "" ||
		req.ReenterPassword == "" || req.Designation == "" {
		return model.AuthResponse{}, ErrFieldsRequired
	}
	if req.Password != req.ReenterPassword {
		return model.AuthResponse{}, ErrPasswordMismatch
	}
	if len(req.Password) < 6 {
		return model.AuthResponse{}, ErrPasswordTooShort
	}

	firstName, lastName := splitName(req.EmployeeName)

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:        req.EmployeeEmail,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Designation:  req.Designation,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Message: "user created successfully",
		Token:   token,
		User:    model.UserToResponse(user),
	}, nil
}

// Login authenticates an employee and returns an auth token. Unknown email
// and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req model.SigninRequest) (model.AuthResponse, error) {
	if req.EmployeeEmail == "" || req.Password == "" {
		return model.AuthResponse{}, ErrEmailPasswordRequired
	}

	user, err := s.store.GetByEmail(ctx, req.EmployeeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Message: "sign in successful",
		Token:   token,
		User:    model.UserToResponse(user),
	}, nil
}

// GetProfile retrieves an employee by ID and returns safe user data.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserToResponse(user), nil
}

// splitName splits a full name on the first space: everything before it is
// the first name, the remainder is the last name (possibly empty).
func splitName(full string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(full), " ")
	return first, last
}
