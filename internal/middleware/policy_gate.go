package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/auth"
)

// LoginRoute is where unauthenticated callers of a gated prefix are sent.
const LoginRoute = "/login"

// SessionCookie is the cookie fallback for browser navigation, where no
// Authorization header is available.
const SessionCookie = "session"

// gatedPrefix binds one route namespace to the role allowed inside it.
type gatedPrefix struct {
	prefix string
	role   models.Role
}

// The static policy table. Order does not matter: prefixes are disjoint.
var gatedPrefixes = []gatedPrefix{
	{prefix: "/student", role: models.RoleStudent},
	{prefix: "/hod", role: models.RoleHOD},
	{prefix: "/guard", role: models.RoleGuard},
}

// landingRoutes maps each role to its home route, used when a caller strays
// into a foreign namespace.
var landingRoutes = map[models.Role]string{
	models.RoleStudent: "/student/dashboard",
	models.RoleHOD:     "/hod/dashboard",
	models.RoleGuard:   "/guard/scanner",
}

// ProfileResolver looks up the caller's profile for policy evaluation. The
// session token alone is not trusted for the role: the profile store is the
// authority.
type ProfileResolver interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// PolicyGate enforces the role-per-namespace policy on page routes. A caller
// without a valid session is redirected to login on any gated prefix and
// passed through everywhere else; a caller inside a foreign namespace is
// redirected to their own landing route, never silently let through.
type PolicyGate struct {
	jwtService *auth.JWTService
	profiles   ProfileResolver
}

// NewPolicyGate creates a new policy gate
func NewPolicyGate(jwtService *auth.JWTService, profiles ProfileResolver) *PolicyGate {
	return &PolicyGate{
		jwtService: jwtService,
		profiles:   profiles,
	}
}

// Handler evaluates the policy table for every request.
func (g *PolicyGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		required, gated := requiredRole(c.Request.URL.Path)

		claims := g.sessionClaims(c)
		if claims == nil {
			if gated {
				c.Redirect(http.StatusTemporaryRedirect, LoginRoute)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		profile, err := g.profiles.GetByID(c.Request.Context(), claims.ProfileID)
		if err != nil {
			if gated {
				c.Redirect(http.StatusTemporaryRedirect, LoginRoute)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if gated && profile.Role != required {
			landing, ok := landingRoutes[profile.Role]
			if !ok {
				landing = LoginRoute
			}
			c.Redirect(http.StatusTemporaryRedirect, landing)
			c.Abort()
			return
		}

		c.Set(ContextProfileID, profile.ID)
		c.Set(ContextRole, string(profile.Role))
		c.Set(ContextDepartment, profile.Department)
		c.Next()
	}
}

// sessionClaims resolves the session from the bearer header first and the
// session cookie second. A missing or invalid session yields nil.
func (g *PolicyGate) sessionClaims(c *gin.Context) *auth.Claims {
	tokenString := ""
	if header := c.GetHeader("Authorization"); header != "" {
		if extracted, err := auth.ExtractBearerToken(header); err == nil {
			tokenString = extracted
		}
	}
	if tokenString == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return nil
	}

	claims, err := g.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

// requiredRole returns the role gating a path, if any.
func requiredRole(path string) (models.Role, bool) {
	for _, entry := range gatedPrefixes {
		if path == entry.prefix || strings.HasPrefix(path, entry.prefix+"/") {
			return entry.role, true
		}
	}
	return "", false
}
