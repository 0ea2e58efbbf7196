package http

import (
	"fmt"
	"net/http"
	"strings"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TenantHeader carries the restaurant the caller claims to act for. The
// claim is checked against the token's permitted set before any handler
// runs; handlers only ever see the resolved tenant context.
const TenantHeader = "X-Restaurant-ID"

// tenantContextKey is the echo context key holding the resolved tenant.
const tenantContextKey = "tenant"

// authClaims is the verified content of an access token.
type authClaims struct {
	Role    string   `json:"role"`
	Tenants []string `json:"tenants"`
	Tag     string   `json:"tag,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token, builds the acting principal
// from its claims, and resolves the tenant claimed in the request header.
// Requests reach handlers only with a fully resolved tenant context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Missing bearer token"))
			}
			tokenString := strings.TrimPrefix(auth, "Bearer ")

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Invalid token"))
			}

			principal, err := actorFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Invalid token claims"))
			}

			claimed, err := kernel.UUIDFromString(c.Request().Header.Get(TenantHeader))
			if err != nil {
				return c.JSON(http.StatusBadRequest,
					errorBody(http.StatusBadRequest, "Missing or malformed "+TenantHeader+" header"))
			}

			tenant, err := principal.ResolveTenant(claimed)
			if err != nil {
				return c.JSON(http.StatusForbidden,
					errorBody(http.StatusForbidden, "Not permitted to act for the requested restaurant"))
			}

			c.Set(tenantContextKey, tenant)
			return next(c)
		}
	}
}

// actorFromClaims builds the domain principal from verified token claims.
func actorFromClaims(claims *authClaims) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, err
	}

	tenantIDs := make([]kernel.UUID, 0, len(claims.Tenants))
	for _, raw := range claims.Tenants {
		tenantID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return actor.Actor{}, idErr
		}
		tenantIDs = append(tenantIDs, tenantID)
	}

	return actor.NewActor(id, role, tenantIDs, claims.Tag)
}

// tenantFrom returns the tenant context resolved by AuthMiddleware.
func tenantFrom(c echo.Context) (actor.TenantContext, bool) {
	tenant, ok := c.Get(tenantContextKey).(actor.TenantContext)
	return tenant, ok
}
