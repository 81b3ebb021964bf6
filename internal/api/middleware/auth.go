package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"edusync/backend/internal/policy"
	"edusync/backend/pkg/jwt"
	"edusync/backend/pkg/metrics"
	"edusync/backend/pkg/response"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// JWTAuth validates the bearer token and stores the caller's identity in the
// context. Requests without a valid token are rejected with 401.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller's identity when a valid bearer token is
// present. Missing or invalid tokens are ignored and the request continues
// anonymously.
func OptionalJWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := jwtMgr.ParseToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID())
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
}

// RoleAuth rejects callers whose token role is none of allowedRoles. It
// must run after JWTAuth.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := IdentityFrom(c)

		decision := policy.DenyForbidden
		for _, role := range allowedRoles {
			d := policy.Decide(policy.Request{Caller: caller, RequiredRole: role})
			if d != policy.DenyForbidden {
				decision = d
				break
			}
		}
		metrics.RecordAuthzDecision(caller.Role, decision.String())

		switch decision {
		case policy.Allow:
			c.Next()
		case policy.DenyUnauthenticated:
			response.Unauthorized(c, "authentication required")
			c.Abort()
		default:
			response.Forbidden(c, "insufficient role")
			c.Abort()
		}
	}
}

// IdentityFrom reads the identity stored by JWTAuth. It is empty for
// anonymous requests.
func IdentityFrom(c *gin.Context) policy.Identity {
	return policy.Identity{
		UserID: c.GetString(ContextUserID),
		Email:  c.GetString(ContextEmail),
		Role:   c.GetString(ContextRole),
	}
}
