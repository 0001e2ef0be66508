package navigation

import (
	"testing"

	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/stretchr/testify/assert"
)

func routes(items []NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Route)
	}
	return out
}

func TestVisibleNavItemsAdmin(t *testing.T) {
	got := routes(VisibleNavItems(staffdomain.RoleAdmin))
	assert.Equal(t, []string{
		"/dashboard",
		"/dashboard/admin/services",
		"/dashboard/admin/staff",
		"/dashboard/vendors",
		"/dashboard/jobs",
	}, got)
}

func TestVisibleNavItemsManagerExcludesStaffAndServices(t *testing.T) {
	got := routes(VisibleNavItems(staffdomain.RoleManager))
	assert.Equal(t, []string{"/dashboard", "/dashboard/vendors", "/dashboard/jobs"}, got)
	assert.NotContains(t, got, "/dashboard/admin/staff")
	assert.NotContains(t, got, "/dashboard/admin/services")
}

func TestVisibleNavItemsUser(t *testing.T) {
	got := routes(VisibleNavItems(staffdomain.RoleUser))
	assert.Equal(t, []string{"/dashboard", "/dashboard/my-jobs"}, got)
	assert.NotContains(t, got, "/dashboard/admin/staff")
}

func TestCanAccessRoute(t *testing.T) {
	assert.True(t, CanAccessRoute(staffdomain.RoleAdmin, "/dashboard/admin/staff"))
	assert.False(t, CanAccessRoute(staffdomain.RoleUser, "/dashboard/admin/staff"))
	assert.False(t, CanAccessRoute(staffdomain.Role("UNKNOWN"), "/dashboard"))
}
