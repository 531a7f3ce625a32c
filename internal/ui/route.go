package ui

import "strings"

type Route int

const (
	RouteDashboard Route = iota
	RouteTable
)

func (r Route) Path() string {
	if r == RouteTable {
		return "/table"
	}
	return "/dashboard"
}

func (r Route) Title() string {
	if r == RouteTable {
		return "Tasks"
	}
	return "Dashboard"
}

// ParseRoute resolves a path to a page. Anything unknown goes to the dashboard.
func ParseRoute(path string) Route {
	p := strings.TrimRight(strings.TrimSpace(path), "/")
	if p == "/table" {
		return RouteTable
	}
	return RouteDashboard
}
