package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirawit/asset-borrowing/internal/auth"
	"github.com/sirawit/asset-borrowing/internal/transport/middleware"
)

var _ = Describe("RequireRole", func() {
	var (
		guard   func(http.Handler) http.Handler
		reached bool
		next    http.Handler
	)

	BeforeEach(func() {
		guard = middleware.RequireRole(auth.RoleLender)
		reached = false
		next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			reached = true
		})
	})

	withPrincipal := func(r *http.Request, p *auth.Principal) *http.Request {
		return r.WithContext(auth.ContextWithPrincipal(r.Context(), p))
	}

	It("should pass a lender through", func() {
		req := withPrincipal(
			httptest.NewRequest(http.MethodPatch, "/api/borrow/1", nil),
			&auth.Principal{ID: 20, Username: "somchai", Role: auth.RoleLender},
		)
		rec := httptest.NewRecorder()

		guard(next).ServeHTTP(rec, req)

		Expect(reached).To(BeTrue())
	})

	It("should refuse other roles with a JSON body", func() {
		req := withPrincipal(
			httptest.NewRequest(http.MethodPatch, "/api/borrow/1", nil),
			&auth.Principal{ID: 10, Username: "alice", Role: auth.RoleStudent},
		)
		rec := httptest.NewRecorder()

		guard(next).ServeHTTP(rec, req)

		Expect(reached).To(BeFalse())
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal("Forbidden: insufficient permissions"))
	})

	It("should refuse a missing principal with a JSON body", func() {
		req := httptest.NewRequest(http.MethodPatch, "/api/borrow/1", nil)
		rec := httptest.NewRecorder()

		guard(next).ServeHTTP(rec, req)

		Expect(reached).To(BeFalse())
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal("Unauthorized: please login first"))
	})
})
