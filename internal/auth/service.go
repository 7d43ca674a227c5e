package auth

import (
	"log/slog"

	"github.com/sirawit/asset-borrowing/internal"
	"golang.org/x/crypto/bcrypt"
)

// Service performs registration and authentication against the credential store.
type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.DefaultCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with a salted hash. The plaintext password
// is never persisted or logged.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeMissingFields)
	}

	exists, err := s.repo.UsernameExists(dto.Username)
	if err != nil {
		s.logger.Error("register: username lookup failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("Server error", err)
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("register: password hashing failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	user := &User{
		Username:     dto.Username,
		PasswordHash: hash,
		Role:         RoleStudent,
	}
	if err := s.repo.CreateUser(user); err != nil {
		s.logger.Error("register: insert failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and returns the session principal.
func (s *Service) Login(dto LoginDTO) (*Principal, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeMissingFields)
	}

	user, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		return nil, err
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		s.logger.Warn("login: password mismatch", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	principal := user.Principal()
	s.logger.Info("login successful", "user_id", principal.ID, "username", principal.Username, "role", principal.Role)
	return &principal, nil
}
