package middleware

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in request contexts by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey          = contextKey("userID")
	identityKey        = contextKey("identity")
	loggerCtxKey       = contextKey("logger")
	requestMetadataKey = contextKey("requestMetadata")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a request context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetIdentity returns the caller identity placed on the context by AuthMiddleware.
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// WithIdentity stores the caller identity and user ID on ctx.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey, id)
	return context.WithValue(ctx, userIDKey, id.UserID)
}

// GetRequestMetadata returns the caller's network metadata, if recorded.
func GetRequestMetadata(ctx context.Context) domain.RequestMetadata {
	md, _ := ctx.Value(requestMetadataKey).(domain.RequestMetadata)
	return md
}

// WithRequestMetadata stores caller metadata on ctx.
func WithRequestMetadata(ctx context.Context, md domain.RequestMetadata) context.Context {
	return context.WithValue(ctx, requestMetadataKey, md)
}
