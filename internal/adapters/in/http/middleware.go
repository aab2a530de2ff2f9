package http

import (
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// claimsContextKey is the echo context key the middleware stores resolved
// claims under.
const claimsContextKey = "claims"

// ClaimsMiddleware verifies bearer tokens minted by the external auth
// service and reduces them to auth.Claims. Tokens are HMAC-SHA256 signed
// with a shared secret and carry the user id in "sub" and the role name in
// "role".
type ClaimsMiddleware struct {
	secret []byte
}

// NewClaimsMiddleware creates the middleware with the shared signing secret.
func NewClaimsMiddleware(secret []byte) *ClaimsMiddleware {
	return &ClaimsMiddleware{secret: secret}
}

// RequireClaims rejects requests without a valid bearer token and stores
// the resolved claims in the request context for handlers.
func (m *ClaimsMiddleware) RequireClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := m.parse(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

func (m *ClaimsMiddleware) parse(token string) (auth.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return auth.Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, jwt.ErrTokenInvalidClaims
	}

	subject, err := mapClaims.GetSubject()
	if err != nil {
		return auth.Claims{}, err
	}

	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return auth.Claims{}, err
	}

	roleName, _ := mapClaims["role"].(string)
	role, err := auth.RoleFromString(roleName)
	if err != nil {
		return auth.Claims{}, err
	}

	return auth.NewClaims(userID, role)
}

// claimsFromContext retrieves the claims stored by RequireClaims.
func claimsFromContext(c echo.Context) (auth.Claims, error) {
	claims, ok := c.Get(claimsContextKey).(auth.Claims)
	if !ok {
		return auth.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}
	return claims, nil
}
