package v1

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskboard-io/taskboard/internal/models"
)

const (
	userIDCtxKey   = "user_id"
	usernameCtxKey = "username"
	roleNameCtxKey = "role_name"
	tierCtxKey     = "access_tier"
)

// HandleAuthMiddleware is the authentication half of the access guard.
// It validates the bearer token and resolves the role claim into an
// access tier exactly once; everything downstream reads the resolved
// values from the request context. The guard keeps no state between
// requests.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	claims, err := h.tokens.Validate(parts[1])
	if err != nil {
		// Bad signature, expiry and malformed tokens all mean the
		// caller is anonymous.
		h.logger.Error().
			Err(err).
			Msg("failed to validate token")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse subject claim")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Set(usernameCtxKey, claims.Username)
	c.Set(roleNameCtxKey, claims.Role)
	c.Set(tierCtxKey, models.TierFromRoleName(claims.Role))
	c.Next()
}

// RequireTier is the authorization half of the access guard: the
// operation's static allow-list. An empty list admits any
// authenticated caller.
func RequireTier(tiers ...models.AccessTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(tiers) == 0 {
			c.Next()
			return
		}

		tier := callerTier(c)
		for _, allowed := range tiers {
			if tier == allowed {
				c.Next()
				return
			}
		}

		abort(c, newForbiddenError("insufficient role"))
	}
}

func callerID(c *gin.Context) int64 {
	value, _ := c.Get(userIDCtxKey)
	id, _ := value.(int64)
	return id
}

func callerTier(c *gin.Context) models.AccessTier {
	value, _ := c.Get(tierCtxKey)
	tier, _ := value.(models.AccessTier)
	return tier
}

// ownershipScope returns the caller's id when listing results must be
// narrowed to self-assigned rows, which happens exactly for the
// employee tier. Higher tiers and custom roles see the full set.
func ownershipScope(c *gin.Context) *int64 {
	if callerTier(c) != models.TierEmployee {
		return nil
	}
	id := callerID(c)
	return &id
}
