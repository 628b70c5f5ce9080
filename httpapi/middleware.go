package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/semafind/closepairs/session"
)

type SessionUri struct {
	SessionId string `uri:"sessionId" binding:"required,uuid"`
}

// SessionURIMiddleware resolves the session in the path and stores it under
// the "session" key.
func (h *Handlers) SessionURIMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri SessionUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := uuid.Parse(uri.SessionId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := h.manager.Get(id)
		if err == session.ErrNotFound {
			errMsg := fmt.Sprintf("session %s not found", uri.SessionId)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errMsg})
			return
		}
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Set("session", s)
	}
}
