package middleware

import (
	"net/http"

	"github.com/casaviva/hogar-backend/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CartSessionKey = "cart_session"

// SessionMiddleware binds the request to a cart session. The id comes from
// the session cookie; a missing or malformed cookie gets a fresh uuid,
// which is sent back with the response.
func SessionMiddleware(cfg config.CartConfig) gin.HandlerFunc {
	maxAge := int(cfg.CookieMaxAge.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			GetLoggerFromContext(c).Debug("New cart session", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		// refreshed on every request so active carts do not expire
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sessionID, maxAge, "/", "", cfg.CookieSecure, true)

		c.Set(CartSessionKey, sessionID)
		c.Next()
	}
}

// GetCartSession returns the cart session bound by SessionMiddleware
func GetCartSession(c *gin.Context) (string, bool) {
	sessionID, ok := getTyped[string](c, CartSessionKey)
	return sessionID, ok && sessionID != ""
}
