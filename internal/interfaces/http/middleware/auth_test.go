package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/pkg/jwt"
)

type resolverStub struct {
	resolve func(ctx context.Context, identity *entities.Identity) (*entities.Account, error)
}

func (s resolverStub) ResolveAccount(ctx context.Context, identity *entities.Identity) (*entities.Account, error) {
	return s.resolve(ctx, identity)
}

func staticResolver(account *entities.Account) resolverStub {
	return resolverStub{resolve: func(context.Context, *entities.Identity) (*entities.Account, error) {
		return account, nil
	}}
}

func newIdentityService() *jwt.IdentityService {
	return jwt.NewIdentityService("secret", "https://idp.example.com", "storefront")
}

func issue(t *testing.T, svc *jwt.IdentityService, ttl time.Duration) string {
	t.Helper()
	token, err := svc.IssueToken("idp|1", "u@mail.com", "User", "https://cdn.example.com/u.png", ttl)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_BearerFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newIdentityService()
	account := &entities.Account{ID: uuid.New(), Role: entities.AccountRoleBuyer}

	var seen *entities.Identity
	resolver := resolverStub{resolve: func(_ context.Context, identity *entities.Identity) (*entities.Account, error) {
		seen = identity
		return account, nil
	}}

	r := gin.New()
	r.Use(AuthMiddleware(svc, resolver))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetAccountID(c)
		require.True(t, ok)
		got, ok := GetAccount(c)
		require.True(t, ok)
		assert.Equal(t, account.ID, id)
		assert.Equal(t, account, got)
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing token", header: "", status: http.StatusUnauthorized, body: "Authorization header is required"},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, body: "Invalid authorization format"},
		{name: "invalid token", header: "Bearer invalid", status: http.StatusUnauthorized, body: "Invalid token"},
		{name: "expired token", header: "Bearer " + issue(t, svc, -time.Minute), status: http.StatusUnauthorized, body: "Token has expired"},
		{name: "foreign signature", header: "Bearer " + issue(t, jwt.NewIdentityService("other", "https://idp.example.com", "storefront"), time.Minute), status: http.StatusUnauthorized, body: "Invalid token"},
		{name: "valid token", header: "Bearer " + issue(t, svc, time.Minute), status: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(AuthorizationHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Contains(t, w.Body.String(), tc.body)
				assert.Contains(t, w.Body.String(), domainerrors.CodeUnauthorized)
			}
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, "idp|1", seen.Subject)
	assert.Equal(t, "u@mail.com", seen.Email)
	assert.Equal(t, "User", seen.Name)
	assert.Equal(t, "https://cdn.example.com/u.png", seen.AvatarURL)
}

func TestAuthMiddleware_ResolverError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newIdentityService()
	resolver := resolverStub{resolve: func(context.Context, *entities.Identity) (*entities.Account, error) {
		return nil, domainerrors.Conflict("Email is already registered to another account")
	}}

	r := gin.New()
	r.Use(AuthMiddleware(svc, resolver))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, "Bearer "+issue(t, svc, time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeConflict)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	withAccount := func(account *entities.Account) gin.HandlerFunc {
		return func(c *gin.Context) {
			if account != nil {
				c.Set(AccountIDKey, account.ID)
				c.Set(AccountKey, account)
			}
			c.Next()
		}
	}

	cases := []struct {
		name    string
		account *entities.Account
		guard   gin.HandlerFunc
		status  int
	}{
		{name: "no account", guard: RequireAdmin(), status: http.StatusUnauthorized},
		{name: "buyer on admin route", account: &entities.Account{Role: entities.AccountRoleBuyer}, guard: RequireAdmin(), status: http.StatusForbidden},
		{name: "retailer on admin route", account: &entities.Account{Role: entities.AccountRoleRetailer}, guard: RequireAdmin(), status: http.StatusForbidden},
		{name: "admin on admin route", account: &entities.Account{Role: entities.AccountRoleAdmin}, guard: RequireAdmin(), status: http.StatusNoContent},
		{name: "buyer on retailer route", account: &entities.Account{Role: entities.AccountRoleBuyer}, guard: RequireRetailer(), status: http.StatusForbidden},
		{name: "retailer on retailer route", account: &entities.Account{Role: entities.AccountRoleRetailer}, guard: RequireRetailer(), status: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", withAccount(tc.account), tc.guard, func(c *gin.Context) { c.Status(http.StatusNoContent) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestGetAccountID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetAccountID(c)
	assert.False(t, ok)
	_, ok = GetAccount(c)
	assert.False(t, ok)

	c.Set(AccountIDKey, "not-a-uuid")
	_, ok = GetAccountID(c)
	assert.False(t, ok)
}
