package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"student-concern-api/models"

	"github.com/gin-gonic/gin"
)

func roleGatedRouter(required models.ReviewerRole, caller models.ReviewerRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated",
		func(c *gin.Context) { c.Set("role", caller) },
		RequireRole(required),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	r := roleGatedRouter(models.RoleFaculty, models.RoleFaculty)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	for _, caller := range []models.ReviewerRole{models.RoleSSC, models.RoleUSC} {
		r := roleGatedRouter(models.RoleFaculty, caller)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("role %s: expected 403, got %d", caller, w.Code)
		}
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated", RequireRole(models.RoleFaculty), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
