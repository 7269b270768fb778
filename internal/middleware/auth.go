package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthOption configures AuthMiddleware.
type AuthOption func(*authOptions)

type authOptions struct {
	issuer     string
	demoUserID string
}

// WithIssuer rejects tokens whose issuer differs from issuer.
func WithIssuer(issuer string) AuthOption {
	return func(o *authOptions) { o.issuer = issuer }
}

// WithDemoIdentity lets requests that carry no Authorization header act as
// demoUserID. Requests with an invalid token are still rejected.
func WithDemoIdentity(demoUserID string) AuthOption {
	return func(o *authOptions) { o.demoUserID = demoUserID }
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
func AuthMiddleware(jwtSecret string, opts ...AuthOption) gin.HandlerFunc {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if o.demoUserID != "" {
				logger.Debug("No Authorization header, using demo identity")
				setIdentity(c, domain.AnonymousIdentity(o.demoUserID))
				c.Next()
				return
			}
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret, o.issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		setIdentity(c, domain.AuthenticatedIdentity(claims.Subject))
		c.Next()
	}
}

// setIdentity stores the identity in both the Gin and the request context,
// and enriches the request logger with the user ID.
func setIdentity(c *gin.Context, id domain.Identity) {
	ctx := WithIdentity(c.Request.Context(), id)
	logger := GetLoggerFromCtx(ctx).With(slog.String("user_id", id.UserID))
	if id.IsAnonymous() {
		logger = logger.With(slog.Bool("demo_identity", true))
	}
	c.Request = c.Request.WithContext(WithLogger(ctx, logger))
	c.Set(string(userIDKey), id.UserID)
}
