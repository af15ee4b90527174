package domain

import "time"

type Role string

const (
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleStaff   Role = "staff"
)

type User struct {
	ID             string
	Email          string
	Phone          *string
	FirstName      string
	LastName       string
	Role           Role
	PasswordHash   *string
	EmailConfirmed bool
	PhoneConfirmed bool
	IsBlocked      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateUserParams struct {
	Email        string
	Phone        *string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash *string
}

type UserRepo interface {
	Create(p CreateUserParams) (*User, error)
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	ExistsByEmail(email string) (bool, error)
	ConfirmEmail(userID string) error
	ConfirmPhone(userID string) error
	UpdateProfile(userID string, firstName, lastName, phone *string) error
	UpdatePassword(userID string, newHash string) error
	// Delete is the signup rollback hook; callers log failures and move on.
	Delete(id string) error
}
