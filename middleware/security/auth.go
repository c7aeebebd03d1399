package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	tsec "github.com/SaurabhVishwakarma412/PedoDerma/tools/security"
)

// Context keys set by Middleware. Downstream handlers read the viewer
// identity from these, never from client-supplied payload fields.
const (
	CtxParticipantKey = "participantId"
	CtxRoleKey        = "participantRole"
)

// Middleware resolves Authorization: Bearer <token> into an authenticated
// participant id on the gin context. Requests without a valid token are
// rejected before any messaging handler runs.
func Middleware(opts tsec.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "missing bearer token",
			})
			return
		}

		id, err := tsec.Verify(opts, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "invalid or expired token",
			})
			return
		}

		c.Set(CtxParticipantKey, id.ParticipantID)
		c.Set(CtxRoleKey, id.Role)
		c.Next()
	}
}

// ParticipantID returns the authenticated viewer bound by Middleware.
func ParticipantID(c *gin.Context) string {
	v, _ := c.Get(CtxParticipantKey)
	s, _ := v.(string)
	return s
}

func bearerToken(c *gin.Context) string {
	authz := strings.TrimSpace(c.GetHeader("Authorization"))
	if authz == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("bearer "):])
	}
	return ""
}
