package model

import "time"

// User represents an employee row in the database.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Designation  string
	CreatedAt    time.Time
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	EmployeeName    string `json:"employeeName"`
	EmployeeEmail   string `json:"employeeEmail"`
	Password        string `json:"password"`
	ReenterPassword string `json:"reenterPassword"`
	Designation     string `json:"designation"`
}

// SigninRequest represents a login request.
type SigninRequest struct {
	EmployeeEmail string `json:"employeeEmail"`
	Password      string `json:"password"`
}

// QueryRequest carries a natural-language question for the agent.
type QueryRequest struct {
	Question string `json:"question"`
}

// AuthResponse represents a successful signup or signin response.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse wraps the user view for GET /api/auth/profile.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Designation string    `json:"designation"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserToResponse converts a User row into its public view.
func UserToResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Designation: u.Designation,
		CreatedAt:   u.CreatedAt,
	}
}
