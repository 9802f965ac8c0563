package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	GuestCookie = "guest_id"
	guestMaxAge = 30 * 24 * time.Hour
)

// CartIdentity resolves the cart key for the request: "user:<id>" for a
// valid bearer token, otherwise "guest:<uuid>" from the guest cookie, which
// is issued on first visit.
func CartIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := TryGetClaimsFromAuthHeader(c); claims != nil {
				c.Set("auth_claims", claims)
				c.Set("cart_key", "user:"+strconv.FormatInt(claims.UserID, 10))
				return next(c)
			}

			guestID := ""
			if ck, err := c.Cookie(GuestCookie); err == nil {
				if _, err := uuid.Parse(ck.Value); err == nil {
					guestID = ck.Value
				}
			}
			if guestID == "" {
				guestID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     GuestCookie,
					Value:    guestID,
					Path:     "/",
					Expires:  time.Now().Add(guestMaxAge),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set("cart_key", "guest:"+guestID)
			return next(c)
		}
	}
}

// CartKey returns the key set by CartIdentity.
func CartKey(c echo.Context) string {
	k, _ := c.Get("cart_key").(string)
	return k
}
