package store

import "github.com/noah-isme/form-builder/internal/models"

// reduceAuth maps (auth slice, action) to the next slice value. Pure and
// total: no I/O, no panic, unknown actions pass through unchanged.
func reduceAuth(state models.AuthState, action Action) models.AuthState {
	switch a := action.(type) {
	case Login:
		next := state.Clone()
		next.IsLoading = true
		next.Error = ""
		return next

	case LoginSuccess:
		u := a.User
		return models.AuthState{
			User:            &u,
			IsAuthenticated: true,
			IsLoading:       false,
			Error:           "",
		}

	case LoginFailure:
		next := state.Clone()
		next.IsLoading = false
		next.Error = a.Error
		return next

	case Logout:
		next := state.Clone()
		next.IsLoading = true
		return next

	case LogoutSuccess:
		return models.InitialAuthState()

	case LoadCurrentUserSuccess:
		u := a.User
		next := state.Clone()
		next.User = &u
		next.IsAuthenticated = true
		return next

	default:
		return state
	}
}
