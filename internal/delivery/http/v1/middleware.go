package v1

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/taskgo/internal/services"
)

const identityCtxKey = "identity"

// HandleAuthMiddleware gates every task operation: it extracts the
// bearer credential, verifies it statelessly and attaches the decoded
// identity to the request context. Absent, malformed, expired and
// forged credentials are all rejected before any handler runs.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	identity, err := h.tokens.Verify(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError("Not authorized, token failed."))
		return
	}

	c.Set(identityCtxKey, identity)
	c.Next()
}

// identityFromContext returns the identity attached by the auth
// middleware, or nil when the request never passed through it.
func identityFromContext(c *gin.Context) *services.Identity {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*services.Identity)
	return identity
}
