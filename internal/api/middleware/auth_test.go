package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/identity"
)

type stubResolver struct {
	identity *identity.Identity
	err      error
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*identity.Identity, error) {
	return s.identity, s.err
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates/search", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestSessionAuthMissingToken(t *testing.T) {
	mw := SessionAuth(&stubResolver{})
	rec := invoke(t, mw, "", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthRejectedToken(t *testing.T) {
	mw := SessionAuth(&stubResolver{err: identity.ErrUnauthorized})
	rec := invoke(t, mw, "Bearer bad-token", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthServiceDown(t *testing.T) {
	mw := SessionAuth(&stubResolver{err: context.DeadlineExceeded})
	rec := invoke(t, mw, "Bearer token", okHandler)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestSessionAuthStoresIdentity(t *testing.T) {
	want := &identity.Identity{UserID: "u-1", Role: identity.RoleRecruiter}
	mw := SessionAuth(&stubResolver{identity: want})

	var got *identity.Identity
	rec := invoke(t, mw, "Bearer good-token", func(c echo.Context) error {
		got = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.UserID != "u-1" || got.Role != identity.RoleRecruiter {
		t.Errorf("identity in context = %+v, want %+v", got, want)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"matching role passes", identity.RoleRecruiter, []string{identity.RoleRecruiter}, http.StatusOK},
		{"admin passes any guard", identity.RoleAdmin, []string{identity.RoleCandidate}, http.StatusOK},
		{"wrong role forbidden", identity.RoleCandidate, []string{identity.RoleRecruiter}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("identity", &identity.Identity{UserID: "u-2", Role: tc.role})

			if err := RequireRole(tc.allowed...)(okHandler)(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequireRole(identity.RoleRecruiter)(okHandler)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
		{"Bearer ", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
