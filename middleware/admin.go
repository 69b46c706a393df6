package middleware

import (
	"net/http"
	"strings"

	"github.com/Fausto-Grilo/VulnWebApp/auth"
	"github.com/Fausto-Grilo/VulnWebApp/config"
	"github.com/gin-gonic/gin"
)

// AdminHeader is the side-channel marker admin clients attach to requests.
const AdminHeader = "X-Admin"

// HasAdminHeader reports whether any X-Admin value is exactly "true".
func HasAdminHeader(r *http.Request) bool {
	for _, v := range r.Header.Values(AdminHeader) {
		if v == "true" {
			return true
		}
	}
	return false
}

// RequireAdmin gates a route on the admin marker. In header mode the
// X-Admin header is trusted as sent; in token mode a bearer token with
// is_admin=true is required instead.
func RequireAdmin(mode string, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ok bool
		if mode == config.AdminMarkerToken {
			ok = hasAdminToken(c.GetHeader("Authorization"), secret)
		} else {
			ok = HasAdminHeader(c.Request)
		}
		if !ok {
			c.String(http.StatusForbidden, "Admin required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasAdminToken(header string, secret []byte) bool {
	if len(secret) == 0 || !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	claims, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return false
	}
	return claims.IsAdmin
}
