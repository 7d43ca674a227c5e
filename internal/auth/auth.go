package auth

import (
	"context"
	"time"

	"github.com/sirawit/asset-borrowing/internal"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStudent = "student"
	RoleLender  = "lender"
	RoleStaff   = "staff"
)

// User is the persisted account row. The password hash never serializes.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the authenticated identity bound to a session after login.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (p *Principal) IsLender() bool {
	return p.Role == RoleLender
}

// Principal derives the session identity from an account, defaulting the
// role to student when the column is empty.
func (u *User) Principal() Principal {
	role := u.Role
	if role == "" {
		role = RoleStudent
	}
	return Principal{ID: u.ID, Username: u.Username, Role: role}
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	Login(dto LoginDTO) (*Principal, error)
}

type RepositoryAPI interface {
	CreateUser(user *User) error
	GetByUsername(username string) (*User, error)
	UsernameExists(username string) (bool, error)
}

var (
	ErrUsernameExists     = internal.NewConflictError("Username already exists", internal.ErrCodeUsernameExists)
	ErrUserNotFound       = internal.NewValidationError("User not found", internal.ErrCodeUserNotFound)
	ErrInvalidCredentials = internal.NewUnauthorizedError("Invalid password", internal.ErrCodeInvalidCredentials)
	ErrSessionRequired    = internal.NewUnauthorizedError("Unauthorized: please login first", internal.ErrCodeSessionRequired)
)

type ctxKey string

const ContextUserKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
