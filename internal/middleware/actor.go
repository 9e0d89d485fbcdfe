package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// ActorResolver turns an authenticated user ID into an Actor.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (domain.Actor, error)
}

// ActorMiddleware must run after AuthMiddleware. Inactive users are rejected with 403.
func ActorMiddleware(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			case errors.Is(err, apperrors.ErrValidation):
				logger.Warn("User has an unrecognised role", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User role is not recognised"})
			default:
				logger.Error("Failed to resolve actor", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			}
			return
		}
		if !actor.Active {
			logger.Warn("Inactive user rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		ctx = WithLogger(ctx, logger.With(
			slog.String("organization_id", actor.OrganizationID),
			slog.String("role", string(actor.Role.Kind)),
		))
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(actorKey), actor)

		c.Next()
	}
}
