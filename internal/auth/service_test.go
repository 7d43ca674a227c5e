package auth_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirawit/asset-borrowing/internal"
	"github.com/sirawit/asset-borrowing/internal/auth"
)

type mockUserRepository struct {
	users     map[string]*auth.User
	nextID    int64
	createErr error
	lookupErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*auth.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) CreateUser(user *auth.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepository) GetByUsername(username string) (*auth.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	user, exists := m.users[username]
	if !exists {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	_, exists := m.users[username]
	return exists, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, 10, lg)
	})

	Describe("Register", func() {
		It("should create an account with a hashed password", func() {
			user, err := service.Register(auth.RegisterDTO{Username: "alice", Password: "pw1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(user.ID).To(BeNumerically(">", 0))
			Expect(user.Role).To(Equal(auth.RoleStudent))
			Expect(user.PasswordHash).ToNot(Equal("pw1"))
			Expect(auth.VerifyPassword(user.PasswordHash, "pw1")).To(Succeed())
		})

		It("should reject a duplicate username", func() {
			_, err := service.Register(auth.RegisterDTO{Username: "alice", Password: "pw1"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(auth.RegisterDTO{Username: "alice", Password: "pw2"})

			Expect(err).To(Equal(auth.ErrUsernameExists))
			Expect(mockRepo.users).To(HaveLen(1))
		})

		It("should reject missing credentials", func() {
			_, err := service.Register(auth.RegisterDTO{Username: "alice"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(ContainSubstring("Username and password required"))
		})

		It("should wrap repository failures as internal errors", func() {
			mockRepo.createErr = errors.New("disk full")

			_, err := service.Register(auth.RegisterDTO{Username: "alice", Password: "pw1"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(appErr.Message).To(Equal("Server error"))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := service.Register(auth.RegisterDTO{Username: "alice", Password: "pw1"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return the principal on valid credentials", func() {
			principal, err := service.Login(auth.LoginDTO{Username: "alice", Password: "pw1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(principal.Username).To(Equal("alice"))
			Expect(principal.Role).To(Equal(auth.RoleStudent))
		})

		It("should default an empty role to student", func() {
			mockRepo.users["bob"] = &auth.User{
				ID:           2,
				Username:     "bob",
				PasswordHash: mockRepo.users["alice"].PasswordHash,
			}

			principal, err := service.Login(auth.LoginDTO{Username: "bob", Password: "pw1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(principal.Role).To(Equal(auth.RoleStudent))
		})

		It("should fail for an unknown username", func() {
			_, err := service.Login(auth.LoginDTO{Username: "mallory", Password: "pw1"})
			Expect(err).To(Equal(auth.ErrUserNotFound))
		})

		It("should fail with invalid credentials on a wrong password", func() {
			_, err := service.Login(auth.LoginDTO{Username: "alice", Password: "wrong"})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(401))
		})

		It("should reject missing credentials", func() {
			_, err := service.Login(auth.LoginDTO{Username: "alice"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})
})
