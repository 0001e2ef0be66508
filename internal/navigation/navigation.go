// Package navigation shapes the UI navigation set per role. It is advisory
// only; every privileged write is re-verified server-side.
package navigation

import (
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
)

type NavItem struct {
	Route string `json:"route"`
	Label string `json:"label"`
}

var (
	navDashboard = NavItem{Route: "/dashboard", Label: "Dashboard"}
	navServices  = NavItem{Route: "/dashboard/admin/services", Label: "Services"}
	navStaff     = NavItem{Route: "/dashboard/admin/staff", Label: "Staff"}
	navVendors   = NavItem{Route: "/dashboard/vendors", Label: "Vendors"}
	navJobs      = NavItem{Route: "/dashboard/jobs", Label: "Jobs"}
	navMyJobs    = NavItem{Route: "/dashboard/my-jobs", Label: "My Jobs"}
)

// VisibleNavItems returns the ordered navigation set for a role.
func VisibleNavItems(role staffdomain.Role) []NavItem {
	switch role {
	case staffdomain.RoleAdmin:
		return []NavItem{navDashboard, navServices, navStaff, navVendors, navJobs}
	case staffdomain.RoleManager:
		return []NavItem{navDashboard, navVendors, navJobs}
	case staffdomain.RoleUser:
		return []NavItem{navDashboard, navMyJobs}
	default:
		return nil
	}
}

// CanAccessRoute reports whether a role's navigation set includes the route.
func CanAccessRoute(role staffdomain.Role, route string) bool {
	for _, item := range VisibleNavItems(role) {
		if item.Route == route {
			return true
		}
	}
	return false
}
