package middleware

import (
	"net/http"

	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware sends one analytics event per successful authenticated request.
func PosthogMiddleware(analytics utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if analytics == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}
		actor, ok := GetActorFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"route":           c.FullPath(),
			"method":          c.Request.Method,
			"status_code":     c.Writer.Status(),
			"organization_id": actor.OrganizationID,
			"role":            string(actor.Role.Kind),
		}
		analytics.Enqueue(actor.UserID, utils.EventRequestCompleted, props)
	}
}
