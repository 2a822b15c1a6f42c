package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")

// Claims is the bearer token payload. Subject carries the user id.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued by the identity service
// and resolves the caller's capabilities.
type Authenticator struct {
	secret   []byte
	resolver ports.CapabilityResolver
}

// NewAuthenticator fails when secret is empty.
func NewAuthenticator(secret string, resolver ports.CapabilityResolver) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Authenticator{secret: []byte(secret), resolver: resolver}, nil
}

// Middleware rejects requests without a valid token with 401 and stores the
// resolved actor.Capabilities for the route handler.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errUnauthenticated
			}

			actorID, roles, err := a.parse(token)
			if err != nil {
				return errUnauthenticated
			}

			caps, err := a.resolver.Resolve(c.Request().Context(), actorID, roles)
			if err != nil {
				return fmt.Errorf("failed to resolve capabilities: %w", err)
			}

			c.Set(callerKey, caps)
			return next(c)
		}
	}
}

func (a *Authenticator) parse(token string) (kernel.UUID, []actor.Role, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return kernel.UUID{}, nil, errors.New("invalid claims")
	}
	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	roles := make([]actor.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, actor.Role(strings.ToLower(r)))
	}
	return actorID, roles, nil
}

// IssueToken signs a token for actorID. The identity service issues tokens in
// production; this is used by tests and local tooling.
func IssueToken(secret string, actorID kernel.UUID, roles []actor.Role, ttl time.Duration) (string, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	now := time.Now()
	claims := Claims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// caller returns the capabilities stored by Authenticator.Middleware.
func caller(c echo.Context) (actor.Capabilities, error) {
	caps, ok := c.Get(callerKey).(actor.Capabilities)
	if !ok {
		return actor.Capabilities{}, errUnauthenticated
	}
	return caps, nil
}
