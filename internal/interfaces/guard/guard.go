// Package guard decide si el contenido protegido se muestra, se difiere o se
// redirige a login, en función del estado de la sesión.
package guard

import (
	"github.com/jhoicas/supermercado-admin/internal/application/session"
)

// Decision resultado de evaluar el guard.
type Decision int

const (
	// ShowLoading la restauración sigue en vuelo; mostrar placeholder y nada más.
	ShowLoading Decision = iota
	// RedirectLogin sin sesión; redirigir a login reemplazando el historial.
	RedirectLogin
	// Render sesión válida; renderizar el contenido protegido.
	Render
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	default:
		return "render"
	}
}

// Guard protege pantallas detrás del estado de sesión. No es una verificación
// única al montar: se re-evalúa en cada transición de la sesión vía
// suscripción, de modo que un 401 en vuelo expulsa al usuario de inmediato.
type Guard struct {
	session *session.Store
	nav     session.Navigator
}

// New construye el guard y lo suscribe a las transiciones de sesión: si la
// sesión pasa a unauthenticated, redirige a login reemplazando la entrada del
// historial para que "atrás" no regrese a la pantalla protegida.
func New(s *session.Store, nav session.Navigator) *Guard {
	g := &Guard{session: s, nav: nav}
	s.Subscribe(func(st session.State) {
		if st == session.StateUnauthenticated {
			nav.Replace(session.RouteLogin)
		}
	})
	return g
}

// Evaluate decide para el estado actual de la sesión. Cuando devuelve
// RedirectLogin también ejecuta la redirección.
func (g *Guard) Evaluate() Decision {
	switch g.session.State() {
	case session.StateRestoring:
		return ShowLoading
	case session.StateAuthenticated:
		return Render
	default:
		g.nav.Replace(session.RouteLogin)
		return RedirectLogin
	}
}
