package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirawit/asset-borrowing/internal/auth"
)

type mockAuthService struct {
	registerResult *auth.User
	registerErr    error
	loginResult    *auth.Principal
	loginErr       error
}

func (m *mockAuthService) Register(dto auth.RegisterDTO) (*auth.User, error) {
	return m.registerResult, m.registerErr
}

func (m *mockAuthService) Login(dto auth.LoginDTO) (*auth.Principal, error) {
	return m.loginResult, m.loginErr
}

var _ = Describe("AuthHandler", func() {
	const secret = "0123456789abcdef0123456789abcdef"

	var (
		svc      *mockAuthService
		sessions *auth.SessionManager
		handler  *auth.Handler
	)

	BeforeEach(func() {
		svc = &mockAuthService{}
		sessions = auth.NewSessionManager(secret, time.Hour, "session", false)
		handler = auth.NewHandler(svc, sessions)
	})

	Describe("Register", func() {
		It("should answer 201 on success", func() {
			svc.registerResult = &auth.User{ID: 1, Username: "alice", Role: auth.RoleStudent}

			body, _ := json.Marshal(auth.RegisterDTO{Username: "alice", Password: "pw1"})
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(rec.Body.String()).To(ContainSubstring("Register successful!"))
		})

		It("should map a duplicate username to 400", func() {
			svc.registerErr = auth.ErrUsernameExists

			body := []byte(`{"username":"alice","password":"pw1"}`)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("already exists"))
		})
	})

	Describe("Login", func() {
		It("should set the session cookie and return the user", func() {
			svc.loginResult = &auth.Principal{ID: 1, Username: "alice", Role: auth.RoleStudent}

			body := []byte(`{"username":"alice","password":"pw1"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Result().Cookies()).To(HaveLen(1))
			Expect(rec.Body.String()).To(ContainSubstring("Login successful"))
			Expect(rec.Body.String()).To(ContainSubstring("alice"))
		})

		It("should answer 401 on a wrong password without a cookie", func() {
			svc.loginErr = auth.ErrInvalidCredentials

			body := []byte(`{"username":"alice","password":"wrong"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})
	})

	Describe("Me", func() {
		It("should report loggedIn false without a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			rec := httptest.NewRecorder()

			handler.Me(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["loggedIn"]).To(BeFalse())
		})

		It("should report the principal with a valid session", func() {
			issueRec := httptest.NewRecorder()
			Expect(sessions.Issue(issueRec, &auth.Principal{ID: 1, Username: "alice", Role: auth.RoleStudent})).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for _, c := range issueRec.Result().Cookies() {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()

			handler.Me(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["loggedIn"]).To(BeTrue())
		})
	})

	Describe("Logout", func() {
		It("should clear the session cookie", func() {
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			rec := httptest.NewRecorder()

			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})
	})

	Describe("SessionMiddleware", func() {
		It("should pass the principal through to the next handler", func() {
			issueRec := httptest.NewRecorder()
			Expect(sessions.Issue(issueRec, &auth.Principal{ID: 1, Username: "alice", Role: auth.RoleLender})).To(Succeed())

			var seen *auth.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = auth.PrincipalFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
			for _, c := range issueRec.Result().Cookies() {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next).ServeHTTP(rec, req)

			Expect(seen).ToNot(BeNil())
			Expect(seen.Role).To(Equal(auth.RoleLender))
		})

		It("should answer 401 without a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				Fail("next handler must not run")
			})).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
