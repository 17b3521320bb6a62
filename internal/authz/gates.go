package authz

import (
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
)

// Request - всё, что видит гейт. Гейты его не изменяют.
type Request struct {
	Claims *service.Claims
	Params map[string]string
	// Owner - имя пользователя, владеющего ресурсом. Заполняется вызывающей
	// стороной до запуска гейта владения.
	Owner string
}

func (r Request) loggedIn() bool { return r.Claims != nil }

// Gate - именованный предикат над Request.
type Gate struct {
	Name  string
	Allow func(r Request) bool
}

// Check возвращает nil, если гейт пройден, иначе AuthorizationError.
func (g Gate) Check(r Request) error {
	if g.Allow(r) {
		return nil
	}
	return &apperrors.AuthorizationError{Gate: g.Name, Authenticated: r.loggedIn()}
}

var (
	LoggedIn = Gate{
		Name:  "ensureLoggedIn",
		Allow: func(r Request) bool { return r.loggedIn() },
	}

	Admin = Gate{
		Name:  "ensureAdmin",
		Allow: func(r Request) bool { return r.loggedIn() && r.Claims.IsAdmin },
	}

	// CorrectUserOrAdmin сверяет с параметром маршрута :username.
	CorrectUserOrAdmin = Gate{
		Name: "ensureCorrectUserOrAdmin",
		Allow: func(r Request) bool {
			if !r.loggedIn() {
				return false
			}
			return r.Claims.IsAdmin || (r.Params["username"] != "" && r.Claims.Username == r.Params["username"])
		},
	}

	AdminOrNutritionist = Gate{
		Name:  "ensureAdminOrNutritionist",
		Allow: func(r Request) bool { return r.loggedIn() && (r.Claims.IsAdmin || r.Claims.IsNutritionist) },
	}

	AdminOrClient = Gate{
		Name:  "ensureAdminOrClient",
		Allow: func(r Request) bool { return r.loggedIn() && (r.Claims.IsAdmin || r.Claims.IsClient) },
	}

	Nutritionist = Gate{
		Name:  "ensureNutritionist",
		Allow: func(r Request) bool { return r.loggedIn() && r.Claims.IsNutritionist },
	}

	Client = Gate{
		Name:  "ensureClient",
		Allow: func(r Request) bool { return r.loggedIn() && r.Claims.IsClient },
	}

	OwnerOrAdmin = Gate{
		Name: "ensureOwnerOrAdmin",
		Allow: func(r Request) bool {
			if !r.loggedIn() {
				return false
			}
			return r.Claims.IsAdmin || (r.Owner != "" && r.Claims.Username == r.Owner)
		},
	}
)
