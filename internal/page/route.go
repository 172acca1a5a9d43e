package page

import "strings"

type Route string

const (
	RouteHome     Route = "/home"
	RouteLogin    Route = "/login"
	RouteSignup   Route = "/signup"
	RouteReport   Route = "/report"
	RouteSearch   Route = "/search"
	RouteNotFound Route = "*"
)

// Resolve maps a path to a route. The root redirects to home.
func Resolve(path string) Route {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	switch p {
	case "/", "/home":
		return RouteHome
	case "/login":
		return RouteLogin
	case "/signup":
		return RouteSignup
	case "/report":
		return RouteReport
	case "/search":
		return RouteSearch
	}
	return RouteNotFound
}

func (r Route) Title() string {
	switch r {
	case RouteHome:
		return "Lost & Found"
	case RouteLogin:
		return "Log in"
	case RouteSignup:
		return "Sign up"
	case RouteReport:
		return "Report a lost item"
	case RouteSearch:
		return "Search"
	}
	return "Page not found"
}

// Outcome tells the caller what to do after a successful submit.
type Outcome struct {
	Navigate Route  // empty: stay
	Notice   string // one-off confirmation, shown once
}
