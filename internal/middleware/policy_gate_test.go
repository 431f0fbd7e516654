package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/auth"
)

type fakeResolver struct {
	profiles map[string]*models.Profile
}

func (f *fakeResolver) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "gatepass.test",
	})
}

func policyRouter(gate *PolicyGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gate.Handler())
	for _, path := range []string{"/student/foo", "/hod/dashboard", "/guard/scanner", "/about"} {
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}
	return router
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, profile *models.Profile) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(profile)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func TestPolicyGateRedirectsForeignRoleToOwnLanding(t *testing.T) {
	jwtService := testJWTService()
	guard := &models.Profile{ID: "g1", Email: "g@x.edu", Role: models.RoleGuard, Department: "Administration"}
	gate := NewPolicyGate(jwtService, &fakeResolver{profiles: map[string]*models.Profile{"g1": guard}})
	router := policyRouter(gate)

	req := httptest.NewRequest(http.MethodGet, "/student/foo", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, guard))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTemporaryRedirect)
	}
	if loc := w.Header().Get("Location"); loc != "/guard/scanner" {
		t.Errorf("Location = %q, want /guard/scanner", loc)
	}
}

func TestPolicyGateRedirectsUnauthenticatedToLogin(t *testing.T) {
	gate := NewPolicyGate(testJWTService(), &fakeResolver{profiles: map[string]*models.Profile{}})
	router := policyRouter(gate)

	for _, path := range []string{"/student/foo", "/hod/dashboard", "/guard/scanner"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusTemporaryRedirect {
			t.Errorf("%s: status = %d, want redirect", path, w.Code)
			continue
		}
		if loc := w.Header().Get("Location"); loc != LoginRoute {
			t.Errorf("%s: Location = %q, want %s", path, loc, LoginRoute)
		}
	}
}

func TestPolicyGatePassesUngatedPathsThrough(t *testing.T) {
	gate := NewPolicyGate(testJWTService(), &fakeResolver{profiles: map[string]*models.Profile{}})
	router := policyRouter(gate)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for ungated path without session", w.Code)
	}
}

func TestPolicyGateAllowsMatchingRole(t *testing.T) {
	jwtService := testJWTService()
	hod := &models.Profile{ID: "h1", Email: "h@x.edu", Role: models.RoleHOD, Department: "Computer Science"}
	gate := NewPolicyGate(jwtService, &fakeResolver{profiles: map[string]*models.Profile{"h1": hod}})
	router := policyRouter(gate)

	req := httptest.NewRequest(http.MethodGet, "/hod/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, hod))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for matching role", w.Code)
	}
}

func TestPolicyGateHonorsSessionCookie(t *testing.T) {
	jwtService := testJWTService()
	student := &models.Profile{ID: "s1", Email: "s@x.edu", Role: models.RoleStudent, Department: "Computer Science"}
	gate := NewPolicyGate(jwtService, &fakeResolver{profiles: map[string]*models.Profile{"s1": student}})
	router := policyRouter(gate)

	req := httptest.NewRequest(http.MethodGet, "/student/foo", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tokenFor(t, jwtService, student)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 via session cookie", w.Code)
	}
}

func TestPolicyGateUnknownProfileIsLoggedOut(t *testing.T) {
	jwtService := testJWTService()
	ghost := &models.Profile{ID: "gone", Email: "gone@x.edu", Role: models.RoleStudent}
	gate := NewPolicyGate(jwtService, &fakeResolver{profiles: map[string]*models.Profile{}})
	router := policyRouter(gate)

	req := httptest.NewRequest(http.MethodGet, "/student/foo", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, ghost))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want redirect", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != LoginRoute {
		t.Errorf("Location = %q, want %s", loc, LoginRoute)
	}
}
