package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirawit/asset-borrowing/internal/auth"
)

var _ = Describe("SessionManager", func() {
	const secret = "0123456789abcdef0123456789abcdef"

	var manager *auth.SessionManager

	principal := &auth.Principal{ID: 10, Username: "alice", Role: auth.RoleStudent}

	requestWithCookies := func(rec *httptest.ResponseRecorder) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		return req
	}

	BeforeEach(func() {
		manager = auth.NewSessionManager(secret, time.Hour, "session", false)
	})

	It("should round-trip the principal through the cookie", func() {
		rec := httptest.NewRecorder()
		Expect(manager.Issue(rec, principal)).To(Succeed())

		got, ok := manager.Read(requestWithCookies(rec))

		Expect(ok).To(BeTrue())
		Expect(got.ID).To(Equal(principal.ID))
		Expect(got.Username).To(Equal(principal.Username))
		Expect(got.Role).To(Equal(principal.Role))
	})

	It("should set an HttpOnly cookie", func() {
		rec := httptest.NewRecorder()
		Expect(manager.Issue(rec, principal)).To(Succeed())

		cookies := rec.Result().Cookies()
		Expect(cookies).To(HaveLen(1))
		Expect(cookies[0].HttpOnly).To(BeTrue())
		Expect(cookies[0].Name).To(Equal("session"))
	})

	It("should reject a request with no cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)

		_, ok := manager.Read(req)

		Expect(ok).To(BeFalse())
	})

	It("should reject a tampered token", func() {
		rec := httptest.NewRecorder()
		Expect(manager.Issue(rec, principal)).To(Succeed())

		cookie := rec.Result().Cookies()[0]
		parts := strings.Split(cookie.Value, ".")
		parts[1] = strings.Repeat("x", len(parts[1]))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: strings.Join(parts, ".")})

		_, ok := manager.Read(req)

		Expect(ok).To(BeFalse())
	})

	It("should reject a token signed with a different secret", func() {
		other := auth.NewSessionManager(strings.Repeat("y", 32), time.Hour, "session", false)
		rec := httptest.NewRecorder()
		Expect(other.Issue(rec, principal)).To(Succeed())

		_, ok := manager.Read(requestWithCookies(rec))

		Expect(ok).To(BeFalse())
	})

	It("should reject an expired session", func() {
		shortLived := auth.NewSessionManager(secret, -time.Minute, "session", false)
		rec := httptest.NewRecorder()
		Expect(shortLived.Issue(rec, principal)).To(Succeed())

		_, ok := shortLived.Read(requestWithCookies(rec))

		Expect(ok).To(BeFalse())
	})

	It("should expire the cookie on Clear", func() {
		rec := httptest.NewRecorder()
		manager.Clear(rec)

		cookies := rec.Result().Cookies()
		Expect(cookies).To(HaveLen(1))
		Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		Expect(cookies[0].Value).To(BeEmpty())
	})
})
