package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/pkg/jwt"
	"storefront.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountIDKey is the context key for the caller account ID
	AccountIDKey = "accountId"
	// AccountKey is the context key for the caller account
	AccountKey = "account"
)

// TokenVerifier verifies identity provider bearer tokens
type TokenVerifier interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AccountResolver maps a verified identity to its storefront account
type AccountResolver interface {
	ResolveAccount(ctx context.Context, identity *entities.Identity) (*entities.Account, error)
}

// AuthMiddleware verifies the bearer token and loads the caller account,
// creating it on first login
func AuthMiddleware(verifier TokenVerifier, resolver AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", nil)
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>", nil)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		claims, err := verifier.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired", err)
				return
			}
			abortUnauthorized(c, "Invalid token", err)
			return
		}

		account, err := resolver.ResolveAccount(c.Request.Context(), &entities.Identity{
			Subject:   claims.Subject,
			Email:     claims.Email,
			Name:      claims.Name,
			AvatarURL: claims.Picture,
		})
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(AccountIDKey, account.ID)
		c.Set(AccountKey, account)
		ctx := context.WithValue(c.Request.Context(), logger.AccountIDKey, account.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, err error) {
	fields := []zap.Field{zap.String("path", c.Request.URL.Path)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Debug(c.Request.Context(), "Authentication failed: "+message, fields...)

	response.Error(c, domainerrors.Unauthorized(message))
	c.Abort()
}

// GetAccountID gets the caller account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := accountID.(uuid.UUID)
	return id, ok
}

// GetAccount gets the caller account from context
func GetAccount(c *gin.Context) (*entities.Account, bool) {
	account, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	a, ok := account.(*entities.Account)
	return a, ok && a != nil
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...entities.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, exists := GetAccount(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("Authentication required"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if account.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.AccountRoleAdmin)
}

// RequireRetailer creates a middleware that requires retailer role
func RequireRetailer() gin.HandlerFunc {
	return RequireRole(entities.AccountRoleRetailer)
}
