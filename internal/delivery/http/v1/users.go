package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleListUsers lists all registered users without their password
// hashes. The endpoint is deliberately left unauthenticated to match
// the behavior this service replaces; lock it down only once the
// intended access control is confirmed.
func (h *handlerImpl) HandleListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, users)
}
