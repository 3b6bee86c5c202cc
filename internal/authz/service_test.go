package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzTest(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:authz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("create authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestEnforceRoleBuiltinMatrix(t *testing.T) {
	svc := setupAuthzTest(t)

	cases := []struct {
		role   string
		obj    string
		act    string
		expect bool
	}{
		{constants.RoleAdmin, "/api/v1/admin/companies", "POST", true},
		{constants.RoleAdmin, "/api/v1/affiliate/campaigns/7", "GET", true},
		{constants.RoleCompany, "/api/v1/affiliate/generate-link", "PUT", true},
		{constants.RoleCompany, "/api/v1/admin/campaigns/import", "POST", true},
		{constants.RoleCompany, "/api/v1/admin/companies", "POST", false},
		{constants.RoleCompany, "/api/v1/reports", "POST", false},
		{constants.RoleInfluencer, "/api/v1/reports", "POST", true},
		{constants.RoleInfluencer, "/api/v1/affiliate/campaigns/7", "GET", true},
		{constants.RoleInfluencer, "/api/v1/admin/campaigns", "POST", false},
		{constants.RoleInfluencer, "/api/v1/affiliate/generate-link", "PUT", false},
	}

	for _, tc := range cases {
		allowed, err := svc.EnforceRole(tc.role, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.act, tc.obj, err)
		}
		if allowed != tc.expect {
			t.Fatalf("enforce %s %s %s = %v, want %v", tc.role, tc.act, tc.obj, allowed, tc.expect)
		}
	}
}

func TestEnforceRoleRejectsEmptyRole(t *testing.T) {
	svc := setupAuthzTest(t)

	if _, err := svc.EnforceRole("  ", "/dashboard", "GET"); err == nil {
		t.Fatal("expected error for blank role")
	}
}

func TestBootstrapBuiltinRolesIdempotent(t *testing.T) {
	svc := setupAuthzTest(t)

	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	policies, err := svc.GetRolePolicies(constants.RoleInfluencer)
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	seen := map[string]int{}
	for _, p := range policies {
		seen[p.Object+" "+p.Action]++
	}
	for key, count := range seen {
		if count > 1 {
			t.Fatalf("duplicated policy after re-bootstrap: %s", key)
		}
	}
}

func TestNormalizeObjectStripsAPIPrefix(t *testing.T) {
	cases := map[string]string{
		"/api/v1/affiliate/reports": "/affiliate/reports",
		"/api/v1":                   "/",
		"dashboard":                 "/dashboard",
		"":                          "/",
		"/track/abc":                "/track/abc",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", in, got, want)
		}
	}
}
