package middleware

import (
	"net/http"
	"strings"
	"time"

	"GearGodAPI/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenQueryParam carries the token on WebSocket upgrades.
const TokenQueryParam = "token"

// Claims defines JWT payload structure
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("dev-secret-please-change")

// SetSecret replaces the HMAC key used to sign and verify tokens.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateToken creates a signed token for the given user details and expiry (in hours)
func GenerateToken(userID int64, email, role string, hours int) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(hours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "geargod-api",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(jwtSecret)
}

func parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// bearerToken reads "Authorization: Bearer <t>".
func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return "", false
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// headerOrQueryToken also accepts ?token= for WebSocket clients that cannot
// set headers on the upgrade request.
func headerOrQueryToken(c echo.Context) (string, bool) {
	if t, ok := bearerToken(c); ok {
		return t, true
	}
	if t := c.QueryParam(TokenQueryParam); t != "" {
		return t, true
	}
	return "", false
}

func authenticate(lookup func(echo.Context) (string, bool)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := lookup(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid authorization header"})
			}
			claims, err := parseToken(tokenString)
			if err != nil || claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// JWTMiddleware returns an Echo middleware that validates token and sets claims on the context
func JWTMiddleware() echo.MiddlewareFunc {
	return authenticate(bearerToken)
}

// WSAuth is JWTMiddleware for WebSocket upgrades: the token may also come
// from the query string. Use it only on WebSocket routes.
func WSAuth() echo.MiddlewareFunc {
	return authenticate(headerOrQueryToken)
}

// Helper to extract claims
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// TryGetClaimsFromAuthHeader parses the token if present.
// Returns nil when the token is missing or invalid.
func TryGetClaimsFromAuthHeader(c echo.Context) *Claims {
	if cl := GetClaims(c); cl != nil {
		return cl
	}
	tokenString, ok := bearerToken(c)
	if !ok {
		return nil
	}
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

// AdminOnly middleware requires role == admin
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
		}
		return next(c)
	}
}
