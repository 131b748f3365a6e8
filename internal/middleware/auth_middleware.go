package middleware

import (
	"net/http"
	"strings"

	"food_orders_backend/internal/models"
	"food_orders_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware resolves the request's actor from an optional Bearer token.
// Requests without an Authorization header proceed as the anonymous actor;
// a malformed or invalid token is rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(actorKey, models.AnonymousActor())
			c.Next()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid or expired token", err.Error()))
			return
		}
		role := models.Role(claims.Role)
		if !role.Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Token carries an unknown role", claims.Role))
			return
		}
		if role != models.RolePlatformAdmin && claims.TenantID == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Token is missing a tenant", ""))
			return
		}

		c.Set(actorKey, models.Actor{UserID: claims.UserID, TenantID: claims.TenantID, Role: role})
		c.Next()
	}
}

// RoleAuthMiddleware rejects actors whose role is not one of allowedRoles.
// It must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		role := actor.Role
		if actor.IsAnonymous() {
			role = models.RoleAnonymous
		}
		for _, r := range allowedRoles {
			if r == role {
				c.Next()
				return
			}
		}

		status, code := http.StatusForbidden, utils.ErrCodeForbidden
		if actor.IsAnonymous() {
			status, code = http.StatusUnauthorized, utils.ErrCodeUnauthorized
		}
		names := make([]string, 0, len(allowedRoles))
		for _, r := range allowedRoles {
			names = append(names, string(r))
		}
		utils.RespondWithError(c, utils.NewAPIError(status, code,
			"You do not have permission to access this resource", "Required roles: "+strings.Join(names, ", ")))
	}
}

// ActorFromContext returns the actor set by AuthMiddleware, or the anonymous actor.
func ActorFromContext(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.AnonymousActor()
}
