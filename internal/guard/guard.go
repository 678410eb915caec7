// Package guard holds the pure navigation guard decisions: given the auth
// slice and a target route, either allow or redirect.
package guard

import (
	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/store"
)

// Decision is the outcome of evaluating a guard against a route.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Params     map[string]string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(path string, params map[string]string) Decision {
	return Decision{RedirectTo: path, Params: params}
}

// Auth admits authenticated sessions and bounces everyone else to the
// login page carrying the attempted URL for the post-login return trip.
func Auth(state models.AppState, targetURL string) Decision {
	if store.SelectIsAuthenticated(state) {
		return allow()
	}
	return redirect("/login", map[string]string{"returnUrl": targetURL})
}

// Role admits authenticated sessions whose role appears in the allowed
// list. An empty list admits any authenticated session. Unauthenticated
// sessions go to login; wrong roles go to the unauthorized page.
func Role(state models.AppState, targetURL string, roles ...models.UserRole) Decision {
	if !store.SelectIsAuthenticated(state) {
		return redirect("/login", map[string]string{"returnUrl": targetURL})
	}
	if len(roles) == 0 {
		return allow()
	}
	user := store.SelectCurrentUser(state)
	if user != nil {
		for _, role := range roles {
			if user.Role == role {
				return allow()
			}
		}
	}
	return redirect("/unauthorized", nil)
}

// Admin is the role guard fixed to the admin role.
func Admin(state models.AppState, targetURL string) Decision {
	return Role(state, targetURL, models.RoleAdmin)
}
